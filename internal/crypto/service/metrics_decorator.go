package service

import (
	"context"
	"time"

	"github.com/allisson/utilkit/internal/metrics"
)

// protectorWithMetrics decorates Protector with metrics instrumentation.
type protectorWithMetrics struct {
	next    Protector
	metrics metrics.BusinessMetrics
}

// NewProtectorWithMetrics wraps a Protector with metrics recording under the "crypto" domain.
func NewProtectorWithMetrics(protector Protector, m metrics.BusinessMetrics) Protector {
	return &protectorWithMetrics{
		next:    protector,
		metrics: m,
	}
}

func (p *protectorWithMetrics) Init(ctx context.Context) error {
	start := time.Now()
	err := p.next.Init(ctx)
	p.record(ctx, metrics.OpProtectorInit, start, err)
	return err
}

func (p *protectorWithMetrics) Protect(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	ciphertext, err := p.next.Protect(ctx, plaintext)
	p.record(ctx, metrics.OpProtect, start, err)
	return ciphertext, err
}

func (p *protectorWithMetrics) Unprotect(ctx context.Context, ciphertext string) (string, error) {
	start := time.Now()
	plaintext, err := p.next.Unprotect(ctx, ciphertext)
	p.record(ctx, metrics.OpUnprotect, start, err)
	return plaintext, err
}

func (p *protectorWithMetrics) Close() error {
	return p.next.Close()
}

func (p *protectorWithMetrics) record(
	ctx context.Context,
	operation metrics.Operation,
	start time.Time,
	err error,
) {
	p.metrics.Observe(ctx, metrics.DomainCrypto, operation, time.Since(start), err)
}
