package transferdelivery

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/go-petr/pet-ledger/pkg/routingpkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("sortcode", routingpkg.ValidSortCode); err != nil {
			log.Fatal(err)
		}

		if err := v.RegisterValidation("accountnumber", routingpkg.ValidAccountNumber); err != nil {
			log.Fatal(err)
		}
	}

	os.Exit(m.Run())
}

func TestCreateTransferAPI(t *testing.T) {
	sender := test.RandomAccount()
	recipient := test.RandomAccount()
	amount := decimal.RequireFromString("100")

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	routingBody := gin.H{
		"sort_code":      recipient.Routing.SortCode,
		"account_number": recipient.Routing.AccountNumber,
		"amount":         "100",
		"description":    "rent",
	}

	testCases := []struct {
		name           string
		requestBody    gin.H
		setupAuth      func(t *testing.T, request *http.Request)
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OKByRouting",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				arg := domain.RoutingTransferParams{
					To:          recipient.Routing,
					Amount:      amount,
					Description: "rent",
				}
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Eq(sender.Username), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ any, _ string, got domain.RoutingTransferParams) (domain.TransferResult, error) {
						require.Equal(t, arg.To, got.To)
						require.True(t, arg.Amount.Equal(got.Amount))
						require.Equal(t, arg.Description, got.Description)

						return domain.TransferResult{
							SenderEntry:    domain.Entry{ID: 2, AccountID: sender.ID, Debit: amount},
							RecipientEntry: domain.Entry{ID: 3, AccountID: recipient.ID, Credit: amount},
						}, nil
					})
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "OKByID",
			requestBody: gin.H{
				"from_account_id": sender.ID,
				"to_account_id":   recipient.ID,
				"amount":          100,
			},
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Eq(sender.Username), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ any, _ string, got domain.CreateTransferParams) (domain.TransferResult, error) {
						require.Equal(t, sender.ID, got.FromAccountID)
						require.Equal(t, recipient.ID, got.ToAccountID)
						require.True(t, amount.Equal(got.Amount))

						return domain.TransferResult{}, nil
					})
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "NoAuthorization",
			requestBody: routingBody,
			setupAuth:   func(t *testing.T, request *http.Request) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:        "MissingRecipient",
			requestBody: gin.H{"amount": "100"},
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      ErrMissingRecipient.Error(),
		},
		{
			name:        "MissingSender",
			requestBody: gin.H{"to_account_id": recipient.ID, "amount": "100"},
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      ErrMissingSender.Error(),
		},
		{
			name: "InvalidAccountNumber",
			requestBody: gin.H{
				"sort_code":      recipient.Routing.SortCode,
				"account_number": "1234",
				"amount":         "100",
			},
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "AccountNumber must be eight digits",
		},
		{
			name:        "InsufficientBalance",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInsufficientBalance.Error(),
		},
		{
			name:        "SelfTransfer",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrSelfTransfer)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrSelfTransfer.Error(),
		},
		{
			name:        "RecipientNotFound",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrRecipientNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrRecipientNotFound.Error(),
		},
		{
			name:        "InvalidOwner",
			requestBody: gin.H{"from_account_id": recipient.ID, "to_account_id": sender.ID, "amount": "1"},
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrInvalidOwner)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrInvalidOwner.Error(),
		},
		{
			name:        "TransferFailed",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrTransferFailed)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      domain.ErrTransferFailed.Error(),
		},
		{
			name:        "InternalError",
			requestBody: routingBody,
			setupAuth: func(t *testing.T, request *http.Request) {
				require.NoError(t, middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer,
					sender.Username, sender.Role, time.Minute))
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().TransferToRouting(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := gin.New()
			server.POST("/transfers", middleware.AuthMiddleware(tokenMaker), NewHandler(service).Create)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			require.NoError(t, err)

			tc.setupAuth(t, request)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			res := web.Response{}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantError, res.Error)
		})
	}
}
