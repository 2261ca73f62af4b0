package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/St1cky1/task-management/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     logrus.FieldLogger

	mu sync.Mutex
}

func NewRabbitMQClient(url, queueName string, log logrus.FieldLogger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Объявляем очередь для аудита
	queue, err := declareQueue(channel, queueName)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
		log:     log,
	}, nil
}

func declareQueue(channel *amqp.Channel, name string) (amqp.Queue, error) {
	queue, err := channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return queue, nil
}

// QueueName возвращает имя очереди
func (c *RabbitMQClient) QueueName() string {
	return c.queue.Name
}

func (c *RabbitMQClient) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    message.MessageID,
			Timestamp:    message.Timestamp,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
		},
	)
	if err != nil {
		return fmt.Errorf("publish audit message: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"action":      message.Action,
		"entity_type": message.EntityType,
		"entity_id":   message.EntityID,
	}).Debug("audit message sent to rabbitmq")
	return nil
}

// Consume opens a dedicated channel for the consumer. The channel is closed
// when ctx is done, which also closes the returned delivery channel.
func (c *RabbitMQClient) Consume(ctx context.Context, consumer string) (<-chan amqp.Delivery, error) {
	channel, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consumer channel: %w", err)
	}
	if _, err := declareQueue(channel, c.queue.Name); err != nil {
		channel.Close()
		return nil, err
	}
	if err := channel.Qos(10, 0, false); err != nil {
		channel.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	msgs, err := channel.Consume(
		c.queue.Name, // queue
		consumer,     // consumer tag
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("consume %s: %w", c.queue.Name, err)
	}

	go func() {
		<-ctx.Done()
		channel.Close()
	}()
	return msgs, nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
