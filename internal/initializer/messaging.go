package initializer

import (
	"duel-service/config"
	"duel-service/infra/messaging"
)

func InitMessaging(appConfig config.Config) *messaging.KafkaPublisher {
	return messaging.NewKafkaPublisher(messaging.KafkaConfig{
		Brokers: appConfig.Kafka.Brokers,
		Topic:   appConfig.Kafka.Topic,
	})
}
