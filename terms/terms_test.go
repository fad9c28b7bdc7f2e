package terms_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/contract-engine/contracts"
	"github.com/warp/contract-engine/conventions"
	"github.com/warp/contract-engine/schedule"
	"github.com/warp/contract-engine/terms"
)

// sheet builds a minimal valid bullet term sheet and applies overrides.
// A nil override removes the field.
func sheet(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	m := map[string]any{
		"contractType":        "PAM",
		"statusDate":          "2021-01-01",
		"initialExchangeDate": "2021-01-02",
		"maturityDate":        "2031-01-02",
		"notionalPrincipal":   1000000,
	}
	for k, v := range overrides {
		if v == nil {
			delete(m, k)
		} else {
			m[k] = v
		}
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return data
}

func TestFromJSON_BulletSheet(t *testing.T) {
	attrs, err := terms.FromJSON(sheet(t, map[string]any{
		"contractID":                       "loan-1",
		"contractRole":                     "RPL",
		"currency":                         "USD",
		"nominalInterestRate":              0.05,
		"dayCountConvention":               "A360",
		"cycleAnchorDateOfInterestPayment": "2021-07-02",
		"cycleOfInterestPayment":           "6M",
	}))
	require.NoError(t, err)

	assert.Equal(t, "loan-1", attrs.ContractID)
	assert.Equal(t, contracts.TypeBullet, attrs.ContractType)
	assert.Equal(t, contracts.RoleLiability, attrs.Role)
	assert.Equal(t, "USD", attrs.Currency)
	assert.Equal(t, conventions.DayCountActual360, attrs.DayCount)
	assert.True(t, attrs.Notional.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, attrs.NominalRate.Equal(decimal.RequireFromString("0.05")))

	require.NotNil(t, attrs.InterestPayment)
	assert.Equal(t, 2021, attrs.InterestPayment.Anchor.Year())
	require.NotNil(t, attrs.InterestPayment.Cycle)
	assert.Equal(t, schedule.Cycle{Count: 6, Unit: schedule.UnitMonth}, *attrs.InterestPayment.Cycle)
}

func TestFromJSON_DefaultsApply(t *testing.T) {
	attrs, err := terms.FromJSON(sheet(t, nil))
	require.NoError(t, err)

	_, err = uuid.Parse(attrs.ContractID)
	assert.NoError(t, err, "a missing contractID becomes a UUID")
	assert.Equal(t, contracts.RoleAsset, attrs.Role)
	assert.Equal(t, conventions.DayCountThirtyE360, attrs.DayCount)
	assert.Equal(t, conventions.BusinessDayNone, attrs.BusinessDay)
	assert.Equal(t, conventions.EndOfMonthSameDay, attrs.EndOfMonth)
	assert.IsType(t, conventions.NoHolidays{}, attrs.Calendar)
}

func TestFromJSON_RejectsUnknownField(t *testing.T) {
	_, err := terms.FromJSON(sheet(t, map[string]any{"notionalPrincipale": 5}))
	require.Error(t, err)
	assert.True(t, contracts.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "notionalPrincipale")
}

func TestFromJSON_NamesBadEnumValue(t *testing.T) {
	_, err := terms.FromJSON(sheet(t, map[string]any{"dayCountConvention": "A361"}))
	require.Error(t, err)

	var cfg *contracts.ConfigurationError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, "dayCountConvention", cfg.Attribute)
	assert.Contains(t, cfg.Reason, "A361")
}

func TestFromJSON_BadCycleIsScheduleError(t *testing.T) {
	_, err := terms.FromJSON(sheet(t, map[string]any{
		"cycleAnchorDateOfInterestPayment": "2021-07-02",
		"cycleOfInterestPayment":           "monthly",
	}))
	require.Error(t, err)
	assert.True(t, contracts.IsScheduleError(err))
	assert.Contains(t, err.Error(), "cycleOfInterestPayment")
}

func TestFromJSON_BusinessDayDictionaryCodes(t *testing.T) {
	cases := map[string]conventions.BusinessDayConvention{
		"NOS":  conventions.BusinessDayNone,
		"SCF":  conventions.BusinessDayFollowing,
		"CSF":  conventions.BusinessDayFollowing,
		"SCMF": conventions.BusinessDayModifiedFollowing,
		"CSP":  conventions.BusinessDayPreceding,
		"CSMP": conventions.BusinessDayModifiedPreceding,
	}
	for code, want := range cases {
		attrs, err := terms.FromJSON(sheet(t, map[string]any{"businessDayConvention": code}))
		require.NoError(t, err, code)
		assert.Equal(t, want, attrs.BusinessDay, code)
	}
}

func TestFromJSON_TimeForms(t *testing.T) {
	forms := []string{"2021-01-01", "2021-01-01T00:00:00", "2021-01-01T00:00:00Z"}
	for _, form := range forms {
		attrs, err := terms.FromJSON(sheet(t, map[string]any{"statusDate": form}))
		require.NoError(t, err, form)
		assert.Equal(t, 2021, attrs.StatusDate.Year(), form)
	}

	_, err := terms.FromJSON(sheet(t, map[string]any{"statusDate": "01/02/2021"}))
	require.Error(t, err)
	var cfg *contracts.ConfigurationError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, "statusDate", cfg.Attribute)
}

func TestFromJSON_FeeRequiresBasis(t *testing.T) {
	_, err := terms.FromJSON(sheet(t, map[string]any{"feeRate": 0.0025}))
	require.Error(t, err)

	var cfg *contracts.ConfigurationError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, "feeBasis", cfg.Attribute)
}

func TestFromJSON_ExoticArrays(t *testing.T) {
	attrs, err := terms.FromJSON(sheet(t, map[string]any{
		"contractType": "LAX",
		"arrayCycleAnchorDateOfPrincipalRedemption": []string{"2021-02-02", "2022-02-02"},
		"arrayCycleOfPrincipalRedemption":           []string{"1M", "3M"},
		"arrayNextPrincipalRedemptionPayment":       []float64{1000, 2500},
		"arrayIncreaseDecrease":                     []string{"DEC", "DEC"},
		"arrayCycleAnchorDateOfRateReset":           []string{"2021-02-02"},
		"arrayCycleOfRateReset":                     []string{"6M"},
		"arrayRate":                                 []float64{0.04},
		"arrayFixedVariable":                        []string{"FIX"},
	}))
	require.NoError(t, err)

	arr := attrs.ArraySchedule
	require.NotNil(t, arr)
	assert.Len(t, arr.PrincipalAnchors, 2)
	assert.Equal(t, []contracts.PrincipalKind{contracts.PrincipalDecrease, contracts.PrincipalDecrease}, arr.PrincipalKinds)
	require.Len(t, arr.RateKinds, 1)
	assert.Equal(t, contracts.RateFixed, arr.RateKinds[0])

	_, err = terms.FromJSON(sheet(t, map[string]any{
		"contractType": "LAX",
		"arrayCycleAnchorDateOfPrincipalRedemption": []string{"2021-02-02"},
		"arrayNextPrincipalRedemptionPayment":       []float64{1000},
		"arrayIncreaseDecrease":                     []string{"SIDEWAYS"},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIDEWAYS")
}

func TestFromJSON_ValidationFailureSurfaces(t *testing.T) {
	_, err := terms.FromJSON(sheet(t, map[string]any{"maturityDate": nil}))
	require.Error(t, err)
	assert.True(t, contracts.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "maturityDate")
}

func TestFromYAML_StrictDecode(t *testing.T) {
	good := []byte(`
contractType: LAM
contractRole: RPA
statusDate: 2021-01-01
initialExchangeDate: 2021-01-02
notionalPrincipal: 120000
nominalInterestRate: 0.03
dayCountConvention: A365
cycleAnchorDateOfPrincipalRedemption: 2021-02-02
cycleOfPrincipalRedemption: 1M
nextPrincipalRedemptionPayment: 1000
cycleAnchorDateOfInterestPayment: 2021-02-02
cycleOfInterestPayment: 1M
`)
	attrs, err := terms.FromYAML(good)
	require.NoError(t, err)
	assert.Equal(t, contracts.TypeLinearAmortizer, attrs.ContractType)
	require.NotNil(t, attrs.NextRedemption)
	assert.True(t, attrs.NextRedemption.Equal(decimal.NewFromInt(1000)))

	bad := []byte("contractType: PAM\nnotionel: 12\n")
	_, err = terms.FromYAML(bad)
	require.Error(t, err)
	assert.True(t, contracts.IsConfigurationError(err))
}
