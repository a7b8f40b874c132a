package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("api.service")

// Instrument names are static; creation cannot fail on them.
var (
	signupCounter, _ = meter.Int64Counter("sharebnb.users.signups",
		metric.WithDescription("Users created through signup"))
	listingCounter, _ = meter.Int64Counter("sharebnb.listings.created",
		metric.WithDescription("Listings created"))
	messageCounter, _ = meter.Int64Counter("sharebnb.messages.sent",
		metric.WithDescription("Messages stored"))
)
