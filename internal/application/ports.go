package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
	"github.com/oksasatya/go-talent-marketplace/pkg/mailer"
)

// PasswordHasher is satisfied by helpers.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer is satisfied by helpers.JWTManager.
type TokenIssuer interface {
	Issue(subjectID string) (string, time.Time, error)
}

// Publisher puts notification jobs on the queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileCache is satisfied by helpers.JSONCache.
type ProfileCache interface {
	Get(ctx context.Context, id string, dest any) (bool, error)
	Set(ctx context.Context, id string, value any) error
	Del(ctx context.Context, id string) error
}

// FileStorage is satisfied by helpers.GCSUploader.
type FileStorage interface {
	Upload(ctx context.Context, folder, owner, filename, contentType string, r io.Reader) (string, error)
}

var (
	_ PasswordHasher = (*helpers.PasswordHasher)(nil)
	_ TokenIssuer    = (*helpers.JWTManager)(nil)
	_ Publisher      = (*helpers.RabbitPublisher)(nil)
	_ ProfileCache   = (*helpers.JSONCache)(nil)
	_ FileStorage    = (*helpers.GCSUploader)(nil)
)

// notify publishes job without failing the caller; the write it follows has already succeeded.
func notify(ctx context.Context, pub Publisher, logger *logrus.Logger, job mailer.EmailJob) {
	if pub == nil || job.To == "" {
		return
	}
	if err := pub.PublishJSON(ctx, job); err != nil && logger != nil {
		logger.WithError(err).WithField("template", job.Template).Warn("publish notification failed")
	}
}
