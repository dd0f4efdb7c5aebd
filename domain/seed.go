package domain

import "time"

// DefaultStageID is the conventional first stage new leads land in.
const DefaultStageID = "new"

// DefaultStages returns the stock four-stage pipeline.
func DefaultStages() []Stage {
	return []Stage{
		{ID: "new", Title: "New lead", Order: 1, Color: "blue"},
		{ID: "contacted", Title: "Contacted", Order: 2, Color: "yellow"},
		{ID: "proposal", Title: "Proposal sent", Order: 3, Color: "purple"},
		{ID: "closed", Title: "Closed won", Order: 4, Color: "green"},
	}
}

// DemoLists returns the sample lead lists shipped with the demo data.
func DemoLists(now time.Time) []LeadList {
	return []LeadList{
		{ID: "1", Title: "Q3 conference leads", UpdatedAt: now.Add(-48 * time.Hour)},
		{ID: "2", Title: "Website signups", UpdatedAt: now.Add(-4 * time.Hour)},
		{ID: "3", Title: "Cold outreach - Dubai", UpdatedAt: now.Add(-7 * 24 * time.Hour)},
	}
}

// DemoLeads returns sample leads spread across DefaultStages, oldest last.
func DemoLeads() []Lead {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []Lead{
		{ID: "5", Name: "Nadia Ali", Company: "Retail Group", Email: "nadia@retail.com", Phone: "+971 50 555 6666", Value: 5500, StageID: "new", ListID: "3", CreatedAt: day(2023, time.October, 5)},
		{ID: "3", Name: "Layla Mahmoud", Company: "Design Studio", Email: "layla@design.co", Phone: "+966 50 111 2222", Value: 8200, StageID: "proposal", ListID: "2", CreatedAt: day(2023, time.October, 3)},
		{ID: "2", Name: "Karim Youssef", Company: "BuildCorp", Email: "karim@buildcorp.ae", Phone: "+971 50 987 6543", Value: 45000, StageID: "contacted", ListID: "1", CreatedAt: day(2023, time.October, 2)},
		{ID: "1", Name: "Sarah Ahmed", Company: "TechFlow", Email: "sarah@techflow.io", Phone: "+971 50 123 4567", Value: 12500, StageID: "new", ListID: "1", CreatedAt: day(2023, time.October, 1)},
		{ID: "4", Name: "Omar Hassan", Company: "Future Finance", Email: "omar@ff.sa", Phone: "+966 50 333 4444", Value: 120000, StageID: "closed", ListID: "2", CreatedAt: day(2023, time.September, 28)},
	}
}
