package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestSweepHitsEveryTable(t *testing.T) {
	var sessions, resets, verifications bool

	svc := NewCleanupService(
		&mockSessionRepo{deleteExpiredFn: func(ctx context.Context) error {
			sessions = true
			return nil
		}},
		&mockPasswordResetRepo{deleteExpiredFn: func(ctx context.Context) error {
			resets = true
			return nil
		}},
		&mockEmailVerificationRepo{deleteExpiredFn: func(ctx context.Context) error {
			verifications = true
			return nil
		}},
		zap.NewNop(),
	)

	if err := svc.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if !sessions || !resets || !verifications {
		t.Errorf("sweep skipped a table: sessions=%v resets=%v verifications=%v", sessions, resets, verifications)
	}
}

func TestSweepContinuesPastFailure(t *testing.T) {
	sweepErr := errors.New("sessions table locked")
	var resets, verifications bool

	svc := NewCleanupService(
		&mockSessionRepo{deleteExpiredFn: func(ctx context.Context) error {
			return sweepErr
		}},
		&mockPasswordResetRepo{deleteExpiredFn: func(ctx context.Context) error {
			resets = true
			return nil
		}},
		&mockEmailVerificationRepo{deleteExpiredFn: func(ctx context.Context) error {
			verifications = true
			return nil
		}},
		zap.NewNop(),
	)

	err := svc.Sweep(context.Background())
	if !errors.Is(err, sweepErr) {
		t.Errorf("Sweep() error = %v, want %v", err, sweepErr)
	}
	if !resets || !verifications {
		t.Errorf("a failed table stopped the sweep: resets=%v verifications=%v", resets, verifications)
	}
}
