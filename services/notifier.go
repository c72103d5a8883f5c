package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sova/metrics"
	"sova/models"

	"go.uber.org/zap"
)

// NotificationJob is one thank-you mail with certificate.
type NotificationJob struct {
	DonorID    string
	Name       string
	Email      string
	DonorTitle string
}

// CertificateRenderer draws the certificate image for a donor.
type CertificateRenderer interface {
	Render(name, donorID string, tier models.RewardTier) ([]byte, error)
}

// ThankYouSender delivers the thank-you mail with the rendered certificate.
type ThankYouSender interface {
	SendThankYou(job NotificationJob, certificate []byte) error
}

// Notifier runs notification jobs on background workers, detached from the
// request that queued them. Jobs are never retried.
type Notifier struct {
	renderer   CertificateRenderer
	sender     ThankYouSender
	logger     *zap.Logger
	workers    int
	jobTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan NotificationJob
	wg     sync.WaitGroup
}

func NewNotifier(renderer CertificateRenderer, sender ThankYouSender, logger *zap.Logger, workers, queueSize int) *Notifier {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Notifier{
		renderer:   renderer,
		sender:     sender,
		logger:     logger,
		workers:    workers,
		jobTimeout: 2 * time.Minute,
		jobs:       make(chan NotificationJob, queueSize),
	}
}

// Start launches the workers.
func (n *Notifier) Start() {
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.work(i)
	}
	n.logger.Info("notifier started", zap.Int("workers", n.workers), zap.Int("queue_size", cap(n.jobs)))
}

// Stop refuses new jobs, lets the workers drain the queue and waits for them.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.jobs)
	n.mu.Unlock()

	n.wg.Wait()
	n.logger.Info("notifier stopped")
}

// Enqueue hands a job to the workers without blocking.
func (n *Notifier) Enqueue(job NotificationJob) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return fmt.Errorf("notifier stopped")
	}
	select {
	case n.jobs <- job:
		metrics.NotificationQueueGauge.Set(float64(len(n.jobs)))
		return nil
	default:
		return ErrQueueFull
	}
}

func (n *Notifier) work(worker int) {
	defer n.wg.Done()
	for job := range n.jobs {
		metrics.NotificationQueueGauge.Set(float64(len(n.jobs)))
		ctx, cancel := context.WithTimeout(context.Background(), n.jobTimeout)
		if err := n.Process(ctx, job); err != nil {
			metrics.NotificationCounter.WithLabelValues("failed").Inc()
			n.logger.Error("thank-you notification failed",
				zap.Int("worker", worker),
				zap.String("donor_id", job.DonorID),
				zap.String("donor_title", job.DonorTitle),
				zap.Error(err),
			)
		} else {
			metrics.NotificationCounter.WithLabelValues("sent").Inc()
			n.logger.Info("thank-you notification sent",
				zap.String("donor_id", job.DonorID),
				zap.String("email", job.Email),
			)
		}
		cancel()
	}
}

// Process renders and sends one notification synchronously.
func (n *Notifier) Process(ctx context.Context, job NotificationJob) error {
	tier, ok := models.FindRewardTier(job.DonorTitle)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, job.DonorTitle)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	certificate, err := n.renderer.Render(job.Name, job.DonorID, tier)
	if err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sender.SendThankYou(job, certificate); err != nil {
		return fmt.Errorf("send thank-you mail: %w", err)
	}
	return nil
}
