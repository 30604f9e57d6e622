// Пакет mailer — отправка сообщений с формы обратной связи
// через внешний транзакционный почтовый сервис.
package mailer

import (
	"context"
	"errors"
)

// ErrRejected — почтовый сервис отклонил сообщение (ответ не 200).
var ErrRejected = errors.New("почтовый сервис отклонил сообщение")

// Message — письмо владельцу портфолио.
type Message struct {
	// FromName — имя отправителя (из формы)
	FromName string
	// FromEmail — адрес отправителя (из формы)
	FromEmail string
	// Subject — тема
	Subject string
	// Text — текст сообщения
	Text string
	// ToEmail — адрес получателя (владельца)
	ToEmail string
	// ToName — имя получателя
	ToName string
}

// Sender — отправитель писем.
// Одна попытка на вызов; повторы и очереди — не задача отправителя.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
