package tson

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/codec"
	"github.com/tsonlib/tson/scan"
)

// PrometheusConfig is a config of the Prometheus metrics provided by an
// instrumented codec.
//
// An instance can be created only by the [Prometheus] function. The zero
// value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the decodes counter.
	Decodes prometheus.CounterOpts
	// Options for the decode errors counter.
	DecodeErrors prometheus.CounterOpts
	// Options for the encodes counter.
	Encodes prometheus.CounterOpts
	// Options for the decoded bytes histogram.
	DecodedBytes prometheus.HistogramOpts
	// Options for the encoded bytes histogram.
	EncodedBytes prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If
// registerer is nil, metrics will not be registered. Many default parameters
// can be configured by passing configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "tson"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Decodes: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decodes",
			Help:      "Number of decode calls",
		},
		DecodeErrors: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decode_errors",
			Help:      "Number of decode calls that failed",
		},
		Encodes: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "encodes",
			Help:      "Number of encode calls",
		},
		DecodedBytes: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decoded_bytes",
			Help:      "Input bytes consumed per successful decode",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		EncodedBytes: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "encoded_bytes",
			Help:      "Output bytes written per encode",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		decodes:      prometheus.NewCounter(c.Decodes),
		decodeErrors: prometheus.NewCounter(c.DecodeErrors),
		encodes:      prometheus.NewCounter(c.Encodes),
		decodedBytes: prometheus.NewHistogram(c.DecodedBytes),
		encodedBytes: prometheus.NewHistogram(c.EncodedBytes),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.decodes,
			m.decodeErrors,
			m.encodes,
			m.decodedBytes,
			m.encodedBytes,
		)
	}

	return &m
}

type metrics struct {
	decodes      prometheus.Counter
	decodeErrors prometheus.Counter
	encodes      prometheus.Counter
	decodedBytes prometheus.Histogram
	encodedBytes prometheus.Histogram
}

// Instrument wraps c with the metrics described by pc. The wrapper holds no
// per-call state and stays shareable across concurrent calls, like the codec
// it wraps. It forwards the inner codec's ShouldEncode capability, so
// instrumenting an element codec does not change sparse emission.
func Instrument[T any](c codec.Codec[T], pc *PrometheusConfig) codec.Codec[T] {
	if c == nil {
		panic("codec can't be nil")
	}
	if pc == nil {
		panic("config can't be nil")
	}
	return &instrumentedCodec[T]{inner: c, metrics: pc.metrics()}
}

type instrumentedCodec[T any] struct {
	inner   codec.Codec[T]
	metrics *metrics
}

func (c *instrumentedCodec[T]) Decode(s *scan.Scanner) (T, error) {
	start := s.Offset()
	v, err := c.inner.Decode(s)
	c.metrics.decodes.Inc()
	if err != nil {
		c.metrics.decodeErrors.Inc()
		return v, err
	}
	c.metrics.decodedBytes.Observe(float64(s.Offset() - start))
	return v, nil
}

func (c *instrumentedCodec[T]) Encode(b *buffer.Buffer, v T) {
	start := b.Len()
	c.inner.Encode(b, v)
	c.metrics.encodes.Inc()
	c.metrics.encodedBytes.Observe(float64(b.Len() - start))
}

func (c *instrumentedCodec[T]) ShouldEncode(v T) bool {
	return codec.ShouldEncode(c.inner, v)
}
