package http

import (
	"errors"
	"net/http"
	"strings"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Headers set by the gateway after authentication.
const (
	HeaderActorID            = "X-Actor-Id"
	HeaderActorName          = "X-Actor-Name"
	HeaderActorIdentity      = "X-Actor-Identity"
	HeaderActorRole          = "X-Actor-Role"
	HeaderActorType          = "X-Actor-Type"
	HeaderActorOrganizations = "X-Actor-Organizations"
)

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "actor headers are missing or invalid")

// actorFromHeaders stores the forwarded actor in the request context.
func actorFromHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := parseActor(c.Request().Header)
		if err != nil {
			return errUnauthenticated.WithInternal(err)
		}
		c.SetRequest(c.Request().WithContext(actor.WithActor(c.Request().Context(), a)))
		return next(c)
	}
}

func parseActor(h http.Header) (actor.Actor, error) {
	raw := h.Get(HeaderActorID)
	if raw == "" {
		return actor.Actor{}, errors.New("no actor id")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return actor.Actor{}, err
	}

	var orgs []kernel.UUID
	for _, part := range strings.Split(h.Get(HeaderActorOrganizations), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		org, parseErr := kernel.UUIDFromString(part)
		if parseErr != nil {
			return actor.Actor{}, parseErr
		}
		orgs = append(orgs, org)
	}

	return actor.NewActor(
		id,
		h.Get(HeaderActorName),
		h.Get(HeaderActorIdentity),
		actor.Role(h.Get(HeaderActorRole)),
		actor.UserType(h.Get(HeaderActorType)),
		orgs,
	)
}

func actorOf(c echo.Context) (actor.Actor, error) {
	a, ok := actor.FromContext(c.Request().Context())
	if !ok {
		return actor.Actor{}, errUnauthenticated
	}
	return a, nil
}
