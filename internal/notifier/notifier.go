package notifier

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// EmailNotifier отправляет клиенту письмо с подтверждением записи.
// Отправка best-effort: вызывающая сторона не ждет результата и не
// откатывает бронирование при ошибке.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger Logger
}

// NewEmailNotifier создает новый экземпляр email уведомителя
func NewEmailNotifier(host string, port int, user, password, from string, logger Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		logger: logger,
	}
}

// SendAppointmentCreated отправляет письмо о созданной записи
func (n *EmailNotifier) SendAppointmentCreated(appointment *domain.Appointment) error {
	endTime, err := appointment.EndTime()
	if err != nil {
		return fmt.Errorf("notifier: failed to compute end time: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", appointment.ClientEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Запись подтверждена: %s", appointment.ServiceName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Ваша запись создана.\n\n"+
			"Услуга: %s\n"+
			"Дата: %s\n"+
			"Время: %s - %s\n"+
			"Код подтверждения: %s\n",
		appointment.ClientName,
		appointment.ServiceName,
		appointment.AppointmentDate.Format(domain.DateFormat),
		appointment.StartTime,
		endTime,
		appointment.ConfirmationCode,
	))

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notifier: failed to send email to %s: %w", appointment.ClientEmail, err)
	}

	n.logger.Info("Notification sent to %s for appointment id=%d", appointment.ClientEmail, appointment.ID)
	return nil
}

// NoopNotifier заглушка на случай выключенных уведомлений
type NoopNotifier struct{}

// SendAppointmentCreated ничего не отправляет
func (NoopNotifier) SendAppointmentCreated(*domain.Appointment) error {
	return nil
}
