package pubsub

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/riskibarqy/teamtrack/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultSubjectPrefix = "teamtrack.changes"

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

type NATSConfig struct {
	URL            string
	SubjectPrefix  string
	ClientName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Connect dials NATS with reconnect logging.
func Connect(cfg NATSConfig, logger *logging.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = logging.Default()
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = nats.DefaultURL
	}
	reconnectWait := cfg.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}

	nc, err := nats.Connect(url,
		nats.Name(strings.TrimSpace(cfg.ClientName)),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			logger.Error("nats error", "subject", subject, "error", err)
		}),
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "connect to nats %s", url)
	}
	return nc, nil
}

func subjectFor(prefix string, channel realtime.Channel) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return prefix + "." + string(channel)
}

// NATSPublisher publishes changes on core NATS subjects.
type NATSPublisher struct {
	nc      *nats.Conn
	prefix  string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewNATSPublisher(nc *nats.Conn, cfg NATSConfig, logger *logging.Logger, clock clockwork.Clock) *NATSPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &NATSPublisher{
		nc:      nc,
		prefix:  cfg.SubjectPrefix,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker, clock),
		logger:  logger,
	}
}

func (p *NATSPublisher) Publish(ctx context.Context, change realtime.Change) error {
	subject := subjectFor(p.prefix, change.Channel)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("nats.subject", subject),
			attribute.String("realtime.change_type", string(change.Type)),
		)
	}

	if err := p.breaker.Allow(); err != nil {
		p.logger.WarnContext(ctx, "nats circuit breaker rejected publish", "subject", subject, "state", p.breaker.State())
		return crerr.Wrap(err, "realtime feed is temporarily unavailable")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := codec.NewEncoder(buf).Encode(change); err != nil {
		p.breaker.RecordSuccess()
		return crerr.Wrap(err, "encode change")
	}

	if err := p.nc.Publish(subject, buf.Bytes()); err != nil {
		p.breaker.RecordFailure()
		return crerr.Wrapf(err, "publish change subject=%s", subject)
	}
	p.breaker.RecordSuccess()
	return nil
}

// NATSSubscriber delivers changes from core NATS subjects to local handlers.
type NATSSubscriber struct {
	nc     *nats.Conn
	prefix string
	logger *logging.Logger
}

func NewNATSSubscriber(nc *nats.Conn, cfg NATSConfig, logger *logging.Logger) *NATSSubscriber {
	if logger == nil {
		logger = logging.Default()
	}
	return &NATSSubscriber{nc: nc, prefix: cfg.SubjectPrefix, logger: logger}
}

func (s *NATSSubscriber) Subscribe(channel realtime.Channel, handler realtime.Handler) (func(), error) {
	subject := subjectFor(s.prefix, channel)
	sub, err := s.nc.Subscribe(subject, func(msg *nats.Msg) {
		change, err := decodeChange(msg.Data)
		if err != nil {
			s.logger.Warn("drop malformed change", "subject", msg.Subject, "error", err)
			return
		}
		if change.Channel == "" {
			change.Channel = channel
		}
		handler(context.Background(), change)
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "subscribe subject=%s", subject)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil && !crerr.Is(err, nats.ErrConnectionClosed) {
			s.logger.Warn("nats unsubscribe failed", "subject", subject, "error", err)
		}
	}, nil
}

func decodeChange(data []byte) (realtime.Change, error) {
	var change realtime.Change
	if err := codec.Unmarshal(data, &change); err != nil {
		return realtime.Change{}, crerr.Wrap(err, "decode change")
	}
	if _, ok := realtime.ParseChannel(string(change.Channel)); !ok && change.Channel != "" {
		return realtime.Change{}, crerr.Newf("unknown channel %q", change.Channel)
	}
	return change, nil
}
