package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	handler_mocks "sitegen/internal/handlers/mocks"
	"sitegen/internal/site"
)

func TestBuildHandler_Wait(t *testing.T) {
	tests := []struct {
		name           string
		result         *site.Result
		err            error
		expectedStatus int
	}{
		{
			name: "success",
			result: &site.Result{
				BuildID:  "b-1",
				Records:  3,
				Pages:    9,
				Problems: []error{errors.New("bad.md: invalid date")},
				Duration: 1500 * time.Millisecond,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "build already running",
			err:            site.ErrBuildInProgress,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "generator closed",
			err:            site.ErrGeneratorClosed,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "build failed",
			err:            errors.New("failed to publish output: disk full"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			builder := handler_mocks.NewMockBuilder(ctrl)
			builder.EXPECT().Build(gomock.Any()).Return(tt.result, tt.err)

			handler := NewBuildHandler(builder, 0)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/build?wait=true", nil))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.err != nil {
				if got := decode[ErrorResponse](t, rr); got.Error != tt.err.Error() {
					t.Errorf("Error = %q, want %q", got.Error, tt.err.Error())
				}
				return
			}

			resp := decode[BuildResponse](t, rr)
			if resp.BuildID != "b-1" || resp.Records != 3 || resp.Pages != 9 {
				t.Errorf("response = %+v", resp)
			}
			if len(resp.Problems) != 1 || resp.Problems[0] != "bad.md: invalid date" {
				t.Errorf("Problems = %v", resp.Problems)
			}
			if resp.Duration != "1.5s" {
				t.Errorf("Duration = %q, want 1.5s", resp.Duration)
			}
		})
	}
}

func TestBuildHandler_Async(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	builder := handler_mocks.NewMockBuilder(ctrl)
	builder.EXPECT().Building().Return(false)
	builder.EXPECT().Build(gomock.Any()).DoAndReturn(func(ctx context.Context) (*site.Result, error) {
		defer close(done)
		if ctx.Err() != nil {
			t.Errorf("background build context already done: %v", ctx.Err())
		}
		return &site.Result{BuildID: "b-2"}, nil
	})

	handler := NewBuildHandler(builder, 0)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/build", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	cancel()

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rr.Code)
	}
	if resp := decode[BuildResponse](t, rr); resp.Status != "accepted" {
		t.Errorf("Status = %q, want accepted", resp.Status)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background build did not run")
	}
}

func TestBuildHandler_AsyncWhileBuilding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := handler_mocks.NewMockBuilder(ctrl)
	builder.EXPECT().Building().Return(true)
	builder.EXPECT().Build(gomock.Any()).Times(0)

	handler := NewBuildHandler(builder, 0)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/build", nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	if got := decode[ErrorResponse](t, rr); got.Error != site.ErrBuildInProgress.Error() {
		t.Errorf("Error = %q, want %q", got.Error, site.ErrBuildInProgress.Error())
	}
}

func TestBuildHandler_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := handler_mocks.NewMockBuilder(ctrl)
	builder.EXPECT().Build(gomock.Any()).Return(&site.Result{BuildID: "b-3"}, nil).Times(1)

	handler := NewBuildHandler(builder, time.Hour)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/build?wait=true", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/build?wait=true", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}
}

func TestBuildHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewBuildHandler(handler_mocks.NewMockBuilder(ctrl), 0)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/build", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}
