package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/ports"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/ports/mocks"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/rules"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/service"
	"github.com/DanielPopoola/eligibility-gateway/internal/x12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const isa271 = "ISA*00*          *00*          *ZZ*CLEARHOUSE     *ZZ*CLINIC01       *261016*1200*^*00501*000000456*0*T*:~" +
	"GS*HB*CLEARHOUSE*CLINIC01*20261016*1200*456*X*005010X279A1~ST*271*0001*005010X279A1~"

const trailer271 = "SE*9*0001~GE*1*456~IEA*1*000000456~"

func soap(x12Body string) []byte {
	return []byte(`<soapenv:Envelope xmlns:soapenv="http://www.w3.org/2003/05/soap-envelope"><soapenv:Body>` +
		`<cor:COREEnvelopeRealTimeResponse xmlns:cor="http://www.caqh.org/SOAP/WSDL/CORERule2.2.0.xsd">` +
		`<PayloadType>X12_271_Response_005010X279A1</PayloadType><Payload><![CDATA[` + x12Body + `]]></Payload>` +
		`</cor:COREEnvelopeRealTimeResponse></soapenv:Body></soapenv:Envelope>`)
}

type fixture struct {
	transport *mocks.MockClearinghouse
	payers    *mocks.MockPayerResolver
	recorder  *mocks.MockResultRecorder
	service   *service.EligibilityService
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		transport: mocks.NewMockClearinghouse(t),
		payers:    mocks.NewMockPayerResolver(t),
		recorder:  mocks.NewMockResultRecorder(t),
	}
	builder := x12.NewBuilder(x12.Submitter{
		SenderID:        "CLINIC01",
		ReceiverID:      "CLEARHOUSE",
		ProviderName:    "Riverside",
		ProviderNPI:     "1234567893",
		TraceOriginator: "9876543210",
	}, nil)
	f.service = service.NewEligibilityService(
		builder,
		f.transport,
		rules.NewEngine(rules.Policy{ProgramName: "FFS Behavioral Health"}),
		f.payers,
		f.recorder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func payer() domain.PayerConfig {
	return domain.PayerConfig{
		Name:           "State Medicaid",
		PayerCode:      "SKCO0",
		RequiredFields: []string{domain.FieldMemberID},
	}
}

func query() domain.PatientQuery {
	return domain.PatientQuery{
		FirstName:         "Jane",
		LastName:          "Doe",
		DateOfBirth:       time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		MemberID:          "M123456",
		SSN:               "123456789",
		ExternalPatientID: "pt-42",
	}
}

func TestEligibilityService_CheckEligibility(t *testing.T) {
	t.Run("carve-out verdict with cost share", func(t *testing.T) {
		f := newFixture(t)

		f.transport.EXPECT().
			Submit(mock.Anything, mock.MatchedBy(func(p string) bool {
				return len(p) > 106 && p[:3] == "ISA"
			})).
			Return(&ports.Exchange{
				Body: soap(isa271 +
					"NM1*PR*2*STATE MEDICAID*****PI*SKCO0~" +
					"EB*1*IND*30*HM~" +
					"EB*1*IND*MH*MC~" +
					"EB*B*IND*MH*MC*COPAY$25~" +
					trailer271),
				ContentType:   "application/soap+xml",
				Clearinghouse: "primary",
				Attempts:      1,
			}, nil).
			Once()

		var recorded *domain.CheckRecord
		f.recorder.EXPECT().
			Record(mock.Anything, mock.Anything).
			Run(func(_ context.Context, rec *domain.CheckRecord) { recorded = rec }).
			Return(nil).
			Once()

		result, err := f.service.CheckEligibility(context.Background(), query(), payer())
		require.NoError(t, err)

		assert.True(t, result.Enrolled)
		assert.True(t, result.Verified)
		assert.NotEmpty(t, result.CarveOut)
		require.NotNil(t, result.Copay)
		assert.InDelta(t, 25.0, *result.Copay, 0.001)
		assert.Equal(t, "primary", result.Clearinghouse)
		assert.Len(t, result.ControlNumber, 9)

		require.NotNil(t, recorded)
		assert.Equal(t, "pt-42", recorded.ExternalPatientID)
		assert.Equal(t, "State Medicaid", recorded.PayerName)
		assert.Equal(t, result.ControlNumber, recorded.ControlNumber)
		assert.Empty(t, recorded.ErrorCode)
	})

	t.Run("zero EB segments is a verified negative", func(t *testing.T) {
		f := newFixture(t)

		f.transport.EXPECT().
			Submit(mock.Anything, mock.Anything).
			Return(&ports.Exchange{Body: soap(isa271 + trailer271), ContentType: "application/soap+xml"}, nil)
		f.recorder.EXPECT().Record(mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CheckEligibility(context.Background(), query(), payer())
		require.NoError(t, err)
		assert.False(t, result.Enrolled)
		assert.Equal(t, rules.ReasonNoActiveCoverage, result.Reason)
	})

	t.Run("validation errors never reach the transport", func(t *testing.T) {
		f := newFixture(t)
		q := query()
		q.MemberID = ""

		f.recorder.EXPECT().
			Record(mock.Anything, mock.MatchedBy(func(rec *domain.CheckRecord) bool {
				return rec.ErrorCode == domain.ErrCodeValidation && rec.Result == nil
			})).
			Return(nil)

		_, err := f.service.CheckEligibility(context.Background(), q, payer())
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidation))
		f.transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("transport errors are returned and recorded", func(t *testing.T) {
		f := newFixture(t)
		transportErr := &domain.TransportError{Endpoint: "secondary", Attempts: 2, Err: context.DeadlineExceeded}

		f.transport.EXPECT().Submit(mock.Anything, mock.Anything).Return(nil, transportErr)
		f.recorder.EXPECT().
			Record(mock.Anything, mock.MatchedBy(func(rec *domain.CheckRecord) bool {
				return rec.ErrorCode == domain.ErrCodeTransport
			})).
			Return(nil)

		_, err := f.service.CheckEligibility(context.Background(), query(), payer())

		var got *domain.TransportError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, 2, got.Attempts)
		assert.Equal(t, service.CategoryTransient, service.CategorizeError(err))
	})

	t.Run("999 only reply is malformed", func(t *testing.T) {
		f := newFixture(t)
		ack := "ISA*00*          *00*          *ZZ*CLEARHOUSE     *ZZ*CLINIC01       *261016*1200*^*00501*000000789*0*T*:~" +
			"ST*999*0001~AK9*R*1*1*0~SE*3*0001~IEA*1*000000789~"

		f.transport.EXPECT().
			Submit(mock.Anything, mock.Anything).
			Return(&ports.Exchange{Body: []byte(ack), ContentType: "text/plain"}, nil)
		f.recorder.EXPECT().Record(mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.CheckEligibility(context.Background(), query(), payer())
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMalformedResponse))
	})

	t.Run("ambiguous benefits return a result and an error", func(t *testing.T) {
		f := newFixture(t)

		f.transport.EXPECT().
			Submit(mock.Anything, mock.Anything).
			Return(&ports.Exchange{
				Body:        soap(isa271 + "EB*1*IND*MH*MC~EB*1*IND*MH*HM~" + trailer271),
				ContentType: "application/soap+xml",
			}, nil)
		f.recorder.EXPECT().Record(mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CheckEligibility(context.Background(), query(), payer())
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeAmbiguousBenefit))
		require.NotNil(t, result)
		assert.True(t, result.ManualReview)
		assert.False(t, result.Verified)
	})

	t.Run("recording failure does not fail the check", func(t *testing.T) {
		f := newFixture(t)

		f.transport.EXPECT().
			Submit(mock.Anything, mock.Anything).
			Return(&ports.Exchange{Body: soap(isa271 + "EB*1*IND*30*MC~" + trailer271), ContentType: "application/soap+xml"}, nil)
		f.recorder.EXPECT().Record(mock.Anything, mock.Anything).Return(errors.New("db down"))

		result, err := f.service.CheckEligibility(context.Background(), query(), payer())
		require.NoError(t, err)
		assert.True(t, result.Enrolled)
	})
}

func TestEligibilityService_CheckEligibilityByPayer(t *testing.T) {
	t.Run("unknown payer", func(t *testing.T) {
		f := newFixture(t)
		f.payers.EXPECT().
			FindByName(mock.Anything, "Nowhere Health").
			Return(nil, domain.NewPayerNotFoundError("Nowhere Health"))

		_, err := f.service.CheckEligibilityByPayer(context.Background(), query(), "Nowhere Health")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodePayerNotFound))
	})

	t.Run("resolves payer then checks", func(t *testing.T) {
		f := newFixture(t)
		p := payer()
		f.payers.EXPECT().FindByName(mock.Anything, "State Medicaid").Return(&p, nil)
		f.transport.EXPECT().
			Submit(mock.Anything, mock.Anything).
			Return(&ports.Exchange{Body: soap(isa271 + "EB*1*IND*30*MC~" + trailer271), ContentType: "application/soap+xml"}, nil)
		f.recorder.EXPECT().Record(mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CheckEligibilityByPayer(context.Background(), query(), "State Medicaid")
		require.NoError(t, err)
		assert.True(t, result.Enrolled)
	})
}

func TestCategorizeError(t *testing.T) {
	assert.Equal(t, service.ErrorCategory(""), service.CategorizeError(nil))
	assert.Equal(t, service.CategoryClientError, service.CategorizeError(domain.NewValidationError("dob", "required")))
	assert.Equal(t, service.CategoryBusinessRule, service.CategorizeError(domain.NewAmbiguousBenefitError("x")))
	assert.Equal(t, service.CategoryPermanent, service.CategorizeError(domain.NewMalformedResponseError("x", nil)))
	assert.Equal(t, service.CategoryInfrastructure, service.CategorizeError(&domain.TransportError{StatusCode: 401}))
	assert.Equal(t, service.CategoryPermanent, service.CategorizeError(&domain.TransportError{StatusCode: 400}))
}
