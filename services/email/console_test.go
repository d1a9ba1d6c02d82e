package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dccampos/secretaria/core"
)

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func sentCount() int {
	mu.Lock()
	defer mu.Unlock()
	return len(SentMessages)
}

func lastSent(t *testing.T) core.EmailMessage {
	mu.Lock()
	defer mu.Unlock()
	if len(SentMessages) == 0 {
		t.Fatal("no messages sent")
	}
	return SentMessages[len(SentMessages)-1]
}

func TestConsoleServiceRendersTemplates(t *testing.T) {
	conf := &core.Config{
		AppName:          "Secretaria",
		DefaultFromEmail: "noreply@localhost",
		FrontendBaseURL:  "http://localhost:3000",
	}
	logger := testLogger{}
	core.ParseEmailTemplates(logger)
	svc := NewConsoleService(conf, logger)

	svc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: "Ana Souza", Address: "ana.souza@example.com"}},
		Subject:      "Enrollment approved",
		TemplateName: "admission-approved",
		TemplateData: struct {
			Name             string
			RegistrationCode string
		}{"Ana", "48322026"},
	})

	msg := lastSent(t)
	assert.Contains(t, msg.TextContent, "Ana")
	assert.Contains(t, msg.TextContent, "48322026")
	assert.Contains(t, msg.HTMLContent, "48322026")
}

func TestConsoleServiceSkipsUnsendableMessages(t *testing.T) {
	conf := &core.Config{AppName: "Secretaria"}
	logger := testLogger{}
	core.ParseEmailTemplates(logger)
	svc := NewConsoleService(conf, logger)

	before := sentCount()

	// no recipients
	svc.SendMessages(&core.EmailMessage{Subject: "hi", BodyStr: "hello"})
	// no content
	svc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: "ana.souza@example.com"}},
		Subject: "hi",
	})

	assert.Equal(t, before, sentCount())
}
