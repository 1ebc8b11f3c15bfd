package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = i18n.Initialize("", "en")
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "test")

	token, err := tm.Generate("user-1", "admin", "a@b.co", "alice")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "test", claims.Issuer)
}

func TestTokenManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "test")
	other := NewTokenManager("other-secret", time.Hour, "test")

	foreign, err := other.Generate("user-1", "user", "a@b.co", "alice")
	require.NoError(t, err)
	_, err = tm.Validate(foreign)
	assert.Error(t, err)

	expired := NewTokenManager("secret", time.Minute, "test")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Generate("user-1", "user", "a@b.co", "alice")
	require.NoError(t, err)
	_, err = tm.Validate(stale)
	assert.Error(t, err)

	_, err = tm.Validate("")
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{NewValidationError(i18n.KeyInvalidData), http.StatusBadRequest, "VALIDATION_ERROR"},
		{NewNotFoundError(i18n.KeyOrderNotFound), http.StatusNotFound, "NOT_FOUND"},
		{NewUnauthorizedError(i18n.KeyAuthRequired), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError(i18n.KeyReviewNotPurchased), http.StatusForbidden, "FORBIDDEN"},
		{NewConflictError(i18n.KeyReviewDuplicate), http.StatusBadRequest, "CONFLICT"},
		{NewOutOfStockError(i18n.KeyCartOutOfStock, 2), http.StatusBadRequest, "OUT_OF_STOCK"},
		{NewUpstreamError(i18n.KeyOrderPaymentUpstream, errors.New("boom")), http.StatusInternalServerError, "UPSTREAM_FAILURE"},
		{fmt.Errorf("wrapped: %w", NewNotFoundError(i18n.KeyCartNotFound)), http.StatusNotFound, "NOT_FOUND"},
		{errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code := StatusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestHandleError_MasksUnknownErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders/list/x", nil)

	HandleError(c, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Something went wrong.", body.Message)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestHandleError_TranslatesAppErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/cart/add", nil)

	HandleError(c, NewOutOfStockError(i18n.KeyCartOutOfStock, 5))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Only 5 quantity can be added for this item", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "OUT_OF_STOCK", body.Error.Code)
}

func TestValidateStruct_CustomTags(t *testing.T) {
	type checkout struct {
		Method  string `validate:"required,payment_method"`
		Cart    string `validate:"cart_payment_method"`
		Pincode string `validate:"required,pincode"`
	}

	assert.NoError(t, ValidateStruct(checkout{Method: "cod", Cart: "", Pincode: "560001"}))
	assert.NoError(t, ValidateStruct(checkout{Method: "razorpay", Cart: "ONLINE", Pincode: "560 001"}))

	err := ValidateStruct(checkout{Method: "paypal", Cart: "card", Pincode: "!"})
	require.Error(t, err)

	details := GetValidationErrors(err)
	tags := make([]string, 0, len(details))
	for _, d := range details {
		tags = append(tags, d.Tag)
	}
	assert.ElementsMatch(t, []string{"payment_method", "cart_payment_method", "pincode"}, tags)
	assert.Equal(t, "method", details[0].Field)
}

func TestParseID(t *testing.T) {
	_, err := ParseID("not-a-uuid", "userId")
	assert.True(t, IsKind(err, KindValidation))

	id, err := ParseID(" 3f9b8f0e-8a41-4a5c-9a8e-2c7f3f1b1e10 ", "userId")
	require.NoError(t, err)
	assert.Equal(t, "3f9b8f0e-8a41-4a5c-9a8e-2c7f3f1b1e10", id.String())
}

func TestNormalizePagination(t *testing.T) {
	assert.Equal(t, PaginationParams{Page: 1, Limit: DefaultPageLimit}, NormalizePagination(0, 0))
	assert.Equal(t, PaginationParams{Page: 3, Limit: MaxPageLimit}, NormalizePagination(3, 500))
	assert.Equal(t, 24, NormalizePagination(3, 12).Offset())

	result := CreatePaginationResult([]int{1}, 25, NormalizePagination(1, 12))
	assert.Equal(t, 3, result.TotalPages)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"men", "women"}, SplitList("men, women,,"))
	assert.Nil(t, SplitList(""))
}
