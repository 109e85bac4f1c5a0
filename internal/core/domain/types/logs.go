package types

const (
	ModeOrderService           = "order-service"
	ModeNotificationSubscriber = "notification-subscriber"
	ModeSeed                   = "seed"
)

const (
	ActionGracefulShutdown = "graceful_shutdown"

	ActionServiceStarted        = "service_started"
	ActionDBConnected           = "db_connected"
	ActionDBMigrated            = "db_migrated"
	ActionRabbitMQConnected     = "rabbitmq_connected"
	ActionOrderReceived         = "order_received"
	ActionOrderCreated          = "order_created"
	ActionOrderPublished        = "order_published"
	ActionOrdersListed          = "orders_listed"
	ActionValidationFailed      = "validation_failed"
	ActionDBTransactionFailed   = "db_transaction_failed"
	ActionRabbitmqPublishFailed = "rabbitmq_publish_failed"
	ActionSeeded                = "orders_seeded"

	// RabbitMQ-related actions
	ActionRabbitMQConnecting      = "rabbitmq_connecting"
	ActionRabbitMQDisconnected    = "rabbitmq_disconnected"
	ActionRabbitMQReconnecting    = "rabbitmq_reconnecting"
	ActionRabbitMQReconnected     = "rabbitmq_reconnected"
	ActionRabbitMQReconnectFailed = "rabbitmq_reconnect_failed"
	ActionRabbitMQSetup           = "rabbitmq_setup"
	ActionRabbitMQSetupComplete   = "rabbitmq_setup_complete"
	ActionRabbitMQSetupFailed     = "rabbitmq_setup_failed"
	ActionRabbitMQConsumeStarted  = "rabbitmq_consume_started"
	ActionRabbitMQConsumeFailed   = "rabbitmq_consume_failed"
	ActionRabbitMQConnectFailed   = "rabbitmq_connect_failed"
	ActionRabbitMQAckFailed       = "rabbitmq_ack_failed"
	ActionRabbitMQNackFailed      = "rabbitmq_nack_failed"
	ActionMessageProcessingFailed = "message_processing_failed"

	// Notification actions
	ActionNotificationReceived = "notification_received"
	ActionNotificationSent     = "notification_sent"
	ActionNotificationFailed   = "notification_failed"
	ActionNotificationSkipped  = "notification_skipped"
	ActionMirrorFailed         = "mirror_failed"
	ActionMirrorSucceeded      = "mirror_succeeded"
	ActionFanOutCompleted      = "fanout_completed"
	ActionNoChannels           = "no_channels_configured"

	// Geocoding actions
	ActionGeocodeFailed   = "geocode_failed"
	ActionGeocodeResolved = "geocode_resolved"

	// Database and response actions
	ActionDBConnectFailed = "db_connect_failed"
	ActionDBQueryFailed   = "db_query_failed"
	ActionResponseFailed  = "response_failed"
	ActionServiceFailed   = "service_failed"
	ActionRequestReceived = "request_received"
	ActionRequestPanicked = "request_panicked"
)
