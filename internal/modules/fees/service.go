package fees

import (
	"context"
	"os"
	"strconv"

	"cricketleague/internal/domain"
)

// Breakdown is the fee split shown to the player and charged at the gateway.
// Both paths resolve through the same Service so they cannot diverge.
type Breakdown struct {
	Base  int64 `json:"base"`
	GST   int64 `json:"gst"`
	Total int64 `json:"total"`
}

// ComputeTotal derives GST with round-half-up on the resulting decimal.
func ComputeTotal(base int64, gstPercentage int) Breakdown {
	gst := (base*int64(gstPercentage) + 50) / 100
	return Breakdown{Base: base, GST: gst, Total: base + gst}
}

type Service struct {
	configs configReader
	loggerf func(format string, args ...interface{})

	// envFeeOverride is the parsed REGISTRATION_FEE value; zero means unset
	// or invalid, in which case the remote configuration wins.
	envFeeOverride int64
}

func NewService(configs configReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		configs:        configs,
		loggerf:        loggerf,
		envFeeOverride: parseFeeOverride(os.Getenv("REGISTRATION_FEE")),
	}
}

func parseFeeOverride(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// Resolve returns the fee breakdown using the three-tier base fee order:
// env override, then the remote configuration row, then hard-coded defaults.
// A remote fetch failure falls back instead of blocking the player.
func (s *Service) Resolve(ctx context.Context) (Breakdown, error) {
	base := int64(domain.DefaultRegistrationFee)
	gstPct := domain.DefaultGSTPercentage

	cfg, err := s.configs.GetByKey(ctx, domain.FeeConfigKey)
	if err != nil {
		s.loggerf("level=warn msg=fee configuration fetch failed, using defaults err=%v", err)
	} else {
		if cfg.RegistrationFee > 0 {
			base = cfg.RegistrationFee
		}
		if cfg.GSTPercentage >= 0 && cfg.GSTPercentage <= 100 {
			gstPct = cfg.GSTPercentage
		}
	}

	if s.envFeeOverride > 0 {
		base = s.envFeeOverride
	}

	return ComputeTotal(base, gstPct), nil
}
