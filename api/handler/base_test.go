package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/salesboard/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrLeadNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.FieldError("name", "is required"), http.StatusBadRequest, "INVALID"},
		{domain.ErrStageInUse, http.StatusConflict, "STAGE_IN_USE"},
		{domain.ErrStageReferenced, http.StatusPreconditionFailed, "PRECONDITION"},
		{domain.ErrNothingToExport, http.StatusNotFound, "EMPTY"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, code := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestRespondErrorIncludesField(t *testing.T) {
	h := newBaseHandler(nil, nil)
	var rc fasthttp.RequestCtx
	h.respondError(&rc, domain.FieldError("email", "is malformed"))

	assert.Equal(t, http.StatusBadRequest, rc.Response.StatusCode())
	assert.JSONEq(t,
		`{"status":"error","code":"INVALID","error":"email: is malformed","meta":{"field":"email"}}`,
		string(rc.Response.Body()),
	)
}

func TestParseLeadFilter(t *testing.T) {
	var args fasthttp.Args
	args.Parse("q=+tech+&stage_id=new&list_id=1&min_value=1000&max_value=50000.5&created_from=2023-10-01&created_to=2023-10-03&limit=10&offset=5")

	filter, err := parseLeadFilter(&args)
	require.NoError(t, err)
	assert.Equal(t, "tech", filter.Search)
	assert.Equal(t, "new", filter.StageID)
	assert.Equal(t, "1", filter.ListID)
	require.NotNil(t, filter.MinValue)
	assert.Equal(t, 1000.0, *filter.MinValue)
	require.NotNil(t, filter.MaxValue)
	assert.Equal(t, 50000.5, *filter.MaxValue)
	require.NotNil(t, filter.CreatedFrom)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedFrom)
	require.NotNil(t, filter.CreatedTo)
	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 5, filter.Offset)
}

func TestParseLeadFilterRejectsBadArgs(t *testing.T) {
	cases := map[string]string{
		"min_value":    "min_value=lots",
		"created_from": "created_from=10/01/2023",
		"limit":        "limit=-1",
		"offset":       "offset=x",
	}
	for field, query := range cases {
		t.Run(field, func(t *testing.T) {
			var args fasthttp.Args
			args.Parse(query)
			_, err := parseLeadFilter(&args)
			var dErr *domain.Error
			require.ErrorAs(t, err, &dErr)
			assert.Equal(t, domain.ErrCodeInvalid, dErr.Code)
			assert.Equal(t, field, dErr.Field)
		})
	}
}

func TestParseLeadFilterEmpty(t *testing.T) {
	var args fasthttp.Args
	filter, err := parseLeadFilter(&args)
	require.NoError(t, err)
	assert.Nil(t, filter.MinValue)
	assert.Nil(t, filter.CreatedTo)
	assert.Zero(t, filter.Limit)
}
