package fees

import (
	"context"
	"errors"
	"testing"

	"cricketleague/internal/domain"
)

type fakeConfigReader struct {
	cfg *domain.FeeConfiguration
	err error
}

func (f *fakeConfigReader) GetByKey(ctx context.Context, key string) (*domain.FeeConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func TestComputeTotal_RoundHalfUp(t *testing.T) {
	cases := []struct {
		base  int64
		pct   int
		gst   int64
		total int64
	}{
		{699, 18, 126, 825},  // 125.82 rounds up
		{10, 18, 2, 12},      // 1.8 rounds up
		{100, 18, 18, 118},   // exact
		{250, 18, 45, 295},   // exact
		{1, 18, 0, 1},        // 0.18 rounds down
		{25, 18, 5, 30},      // 4.5 rounds up, half-up not banker's
		{699, 0, 0, 699},     // zero GST
		{1000, 100, 1000, 2000},
	}
	for _, tc := range cases {
		got := ComputeTotal(tc.base, tc.pct)
		if got.Base != tc.base || got.GST != tc.gst || got.Total != tc.total {
			t.Fatalf("ComputeTotal(%d, %d) = %+v, want gst=%d total=%d",
				tc.base, tc.pct, got, tc.gst, tc.total)
		}
	}
}

func TestResolve_DefaultsWhenRemoteUnavailable(t *testing.T) {
	svc := &Service{
		configs: &fakeConfigReader{err: errors.New("store down")},
		loggerf: func(string, ...interface{}) {},
	}
	got, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Breakdown{Base: 699, GST: 126, Total: 825}
	if got != want {
		t.Fatalf("expected default breakdown %+v, got %+v", want, got)
	}
}

func TestResolve_RemoteConfigurationWinsOverDefaults(t *testing.T) {
	svc := &Service{
		configs: &fakeConfigReader{cfg: &domain.FeeConfiguration{
			ConfigKey:       domain.FeeConfigKey,
			RegistrationFee: 999,
			GSTPercentage:   12,
		}},
		loggerf: func(string, ...interface{}) {},
	}
	got, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Breakdown{Base: 999, GST: 120, Total: 1119}
	if got != want {
		t.Fatalf("expected remote breakdown %+v, got %+v", want, got)
	}
}

func TestResolve_EnvOverrideWinsOverRemote(t *testing.T) {
	svc := &Service{
		configs: &fakeConfigReader{cfg: &domain.FeeConfiguration{
			RegistrationFee: 999,
			GSTPercentage:   18,
		}},
		loggerf:        func(string, ...interface{}) {},
		envFeeOverride: 500,
	}
	got, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// The override replaces the base only; the GST percentage still comes
	// from the remote row.
	want := Breakdown{Base: 500, GST: 90, Total: 590}
	if got != want {
		t.Fatalf("expected override breakdown %+v, got %+v", want, got)
	}
}

func TestResolve_InvalidRemoteValuesIgnored(t *testing.T) {
	svc := &Service{
		configs: &fakeConfigReader{cfg: &domain.FeeConfiguration{
			RegistrationFee: 0,
			GSTPercentage:   250,
		}},
		loggerf: func(string, ...interface{}) {},
	}
	got, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Breakdown{Base: 699, GST: 126, Total: 825}
	if got != want {
		t.Fatalf("expected defaults for invalid remote row, got %+v", got)
	}
}

func TestParseFeeOverride(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"", 0},
		{"500", 500},
		{"0", 0},
		{"-10", 0},
		{"abc", 0},
		{"12.5", 0},
	}
	for _, tc := range cases {
		if got := parseFeeOverride(tc.raw); got != tc.want {
			t.Fatalf("parseFeeOverride(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
