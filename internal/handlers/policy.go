package handlers

import (
	"fmt"
	"strings"

	"github.com/ggorockee/storefront/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FailurePolicy decides what a listing endpoint answers when the store fails
type FailurePolicy int

const (
	// PropagateError answers 500 with a generic message
	PropagateError FailurePolicy = iota
	// DegradeToEmpty answers 200 with an empty collection so clients keep rendering
	DegradeToEmpty
)

func (p FailurePolicy) String() string {
	switch p {
	case PropagateError:
		return "propagate"
	case DegradeToEmpty:
		return "degrade"
	}
	return fmt.Sprintf("FailurePolicy(%d)", int(p))
}

// ParseFailurePolicy reads "propagate" or "degrade"
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "propagate":
		return PropagateError, nil
	case "degrade", "":
		return DegradeToEmpty, nil
	}
	return DegradeToEmpty, fmt.Errorf("unknown failure policy %q", s)
}

// listing answers {key: items}, applying policy when err is non-nil
type listing struct {
	endpoint string
	key      string
	policy   FailurePolicy
	log      *zap.Logger
}

var emptyList = []struct{}{}

func (l listing) respond(c *fiber.Ctx, items interface{}, err error) error {
	if err == nil {
		return c.JSON(fiber.Map{l.key: items})
	}

	l.log.Error("listing failed",
		zap.String("endpoint", l.endpoint),
		zap.Stringer("policy", l.policy),
		zap.Error(err),
	)

	if l.policy == DegradeToEmpty {
		middleware.RecordDegraded(l.endpoint)
		return c.JSON(fiber.Map{l.key: emptyList})
	}
	return internalError(c)
}
