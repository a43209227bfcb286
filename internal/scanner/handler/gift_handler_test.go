package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domainErrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/handler/mocks"
)

const finalURL = "https://www.hero-wars.com/?gift_id=ABC"

func TestGiftHandler_DeactivatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsStore bool
		wantStatus int
	}{
		{
			name:       "deactivated",
			body:       `{"finalUrl":"` + finalURL + `","comment":"expired"}`,
			callsStore: true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown gift",
			body:       `{"finalUrl":"` + finalURL + `"}`,
			serviceErr: &domainErrors.ErrGiftNotFound{FinalURL: finalURL},
			callsStore: true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			body:       `{"finalUrl":"` + finalURL + `"}`,
			serviceErr: errors.New("connection reset"),
			callsStore: true,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "missing url",
			body:       `{"comment":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `finalUrl=x`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gifts := mocks.NewGiftService(t)
			if tt.callsStore {
				gifts.On("DeactivateGift", mock.Anything, finalURL).Return(tt.serviceErr).Once()
			}

			router := newRouterWithGifts(t, mocks.NewScanner(t), gifts, 10)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/gifts/deactivate", strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusNoContent {
				assert.Contains(t, decodeObject(t, rec.Body.Bytes()), "description")
			}
		})
	}
}
