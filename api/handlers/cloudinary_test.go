package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bersihin/bersihin-api/api/handlers"
)

func TestCloudinary_GenerateSignature(t *testing.T) {
	t.Setenv("CLOUDINARY_UPLOAD_PRESET", "bersihin-reports")
	t.Setenv("CLOUDINARY_API_SECRET", "test-secret")

	req, err := http.NewRequest("POST", "/api/v1/generate-signature", nil)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.CloudinaryHandler{}
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.GenerateSignature).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["timestamp"])
	assert.NotEmpty(t, resp["signature"])
}
