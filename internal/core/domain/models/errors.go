package models

import "errors"

var (
	ErrorValidationFailed      = errors.New("validation_failed")
	ErrorDbTransactionFailed   = errors.New("db_transaction_failed")
	ErrorRabbitmqPublishFailed = errors.New("rabbitmq_publish_failed")

	ErrorNoChannelsConfigured = errors.New("no notification services are configured")

	ErrorGeocodingNotConfigured = errors.New("opencage api key not configured")
	ErrorGeocodingUpstream      = errors.New("failed to fetch address")
	ErrorAddressNotFound        = errors.New("address not found")
)
