package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"cricketleague/internal/domain"
)

type fakeRegistrationRepo struct {
	created   *domain.Registration
	createErr error
	stored    *domain.Registration
	getErr    error
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = 42
	f.created = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	return nil
}

type recordingSink struct {
	events []string
}

func (r *recordingSink) Publish(event string, data map[string]interface{}) {
	r.events = append(r.events, event)
}

func validRequest() CreateRegistrationRequest {
	return CreateRegistrationRequest{
		FullName:      "  Anjali Sharma ",
		Email:         "Anjali@Example.COM",
		Phone:         "9876543210",
		State:         "Maharashtra",
		City:          "Pune",
		Pincode:       "411001",
		Position:      "Wicket-Keeper",
		TermsAccepted: true,
	}
}

func TestCreate_AlwaysStartsPendingPending(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	sink := &recordingSink{}
	svc := NewService(repo, sink)

	reg, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if reg.Status != domain.RegistrationPending || reg.PaymentStatus != domain.PaymentStatePending {
		t.Fatalf("expected pending/pending, got %s/%s", reg.Status, reg.PaymentStatus)
	}
	if reg.FullName != "Anjali Sharma" {
		t.Fatalf("expected trimmed name, got %q", reg.FullName)
	}
	if reg.Email != "anjali@example.com" {
		t.Fatalf("expected lowercased email, got %q", reg.Email)
	}
	if reg.Phone != "+919876543210" {
		t.Fatalf("expected calling-code prefix, got %q", reg.Phone)
	}
	if reg.Position != domain.PositionWicketKeeper {
		t.Fatalf("expected Wicket-Keeper, got %q", reg.Position)
	}
	if len(sink.events) != 1 || sink.events[0] != "registration_created" {
		t.Fatalf("expected registration_created event, got %v", sink.events)
	}
}

func TestCreate_UnknownPositionDefaultsToBatting(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	svc := NewService(repo, nil)

	req := validRequest()
	req.Position = "Goalkeeper"
	reg, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if reg.Position != domain.PositionBatting {
		t.Fatalf("expected Batting default, got %q", reg.Position)
	}
}

func TestCreate_ValidationFailureNeverHitsTheStore(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	svc := NewService(repo, nil)

	req := validRequest()
	req.Phone = "12345"
	_, err := svc.Create(context.Background(), req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("store must not be called for an invalid form")
	}
}

func TestCreate_DuplicateEmailFromPostgresCode(t *testing.T) {
	repo := &fakeRegistrationRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), validRequest())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_PersistenceErrorCategories(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"pg permission code", &pgconn.PgError{Code: "42501"}, ErrPermissionDenied},
		{"sqlite unique", errors.New("UNIQUE constraint failed: registrations.email"), ErrDuplicateEmail},
		{"duplicate key text", errors.New("duplicate key value violates unique constraint"), ErrDuplicateEmail},
		{"permission text", errors.New("pq: permission denied for table registrations"), ErrPermissionDenied},
		{"connection text", errors.New("dial tcp: connection refused"), ErrConnection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&fakeRegistrationRepo{createErr: tc.err}, nil)
			_, err := svc.Create(context.Background(), validRequest())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGetByID_MapsRecordNotFound(t *testing.T) {
	svc := NewService(&fakeRegistrationRepo{getErr: gorm.ErrRecordNotFound}, nil)
	if _, err := svc.GetByID(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
