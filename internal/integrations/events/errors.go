package events

import "errors"

var (
	// ErrMarshalEvent возвращается при ошибке сериализации события
	ErrMarshalEvent = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке отправки события в брокер
	ErrPublish = errors.New("events: failed to publish event")

	// ErrCreateProducer возвращается при ошибке подключения к брокеру
	ErrCreateProducer = errors.New("events: failed to create producer")
)
