package fridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// 只打驗證路徑的測試，不需要真的資料庫或條碼服務
func validationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIngredientHandler(nil, nil)
	r := gin.New()
	r.POST("/ingredients", h.Create)
	r.PATCH("/ingredients/:id", h.UpdateAmounts)
	r.GET("/barcode/:code", h.LookupBarcode)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIngredientRequiresName(t *testing.T) {
	r := validationRouter()
	w := postJSON(r, "/ingredients", `{"quantity": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIngredientRequiresAmount(t *testing.T) {
	r := validationRouter()
	w := postJSON(r, "/ingredients", `{"name": "flour"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity or weight")
}

func TestCreateIngredientRejectsNegativeAmount(t *testing.T) {
	r := validationRouter()
	w := postJSON(r, "/ingredients", `{"name": "flour", "quantity": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIngredientRejectsBadExpiryDate(t *testing.T) {
	r := validationRouter()
	w := postJSON(r, "/ingredients", `{"name": "milk", "quantity": 1, "expiry_date": "not-a-date"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAmountsRejectsBadID(t *testing.T) {
	r := validationRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/ingredients/abc", strings.NewReader(`{"quantity": 1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAmountsRequiresField(t *testing.T) {
	r := validationRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/ingredients/1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupBarcodeRejectsNonDigits(t *testing.T) {
	r := validationRouter()

	for _, code := range []string{"abc", "12a45", "12-45"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/barcode/"+code, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("4006381333931"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("40063a"))
	assert.False(t, isDigits("4006 381"))
}
