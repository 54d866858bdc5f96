package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/ParticlesofMind/english-language-analysis/pkg/resilience"
)

func TestClassify(t *testing.T) {
	auth := &pq.Error{Code: "28P01", Message: "password authentication failed"}
	if err := classify(auth); !resilience.IsPermanent(err) {
		t.Errorf("classify(%v) should be permanent", auth)
	}

	conn := &pq.Error{Code: "57P03", Message: "the database system is starting up"}
	if err := classify(conn); resilience.IsPermanent(err) {
		t.Errorf("classify(%v) should be retryable", conn)
	}

	refused := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	if err := classify(refused); resilience.IsPermanent(err) {
		t.Error("network errors should be retryable")
	}
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}
