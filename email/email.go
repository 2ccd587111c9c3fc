package email

import (
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// SendWelcomeEmail greets a newly registered user. Outside production it just
// logs, so local registration doesn't need AWS credentials.
func SendWelcomeEmail(recipient, name string) error {
	if os.Getenv("GOENV") != "production" {
		log.Printf("skipping welcome email to %s outside production\n", recipient)
		return nil
	}

	subject := "Welcome to the blog"
	htmlBody := fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your account is ready. Sign in and write your first post.</p>", name)
	textBody := fmt.Sprintf("Welcome, %s! Your account is ready. Sign in and write your first post.", name)

	return sendEmailViaSES(recipient, subject, htmlBody, textBody)
}

// sendEmailViaSES sends an email using AWS SES
func sendEmailViaSES(recipient, subject, htmlBody, textBody string) error {
	sess, err := session.NewSession()
	if err != nil {
		return fmt.Errorf("error creating AWS session: %v", err)
	}

	svc := ses.New(sess)

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(recipient),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(textBody),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(os.Getenv("NOTIFY_FROM_EMAIL")),
	}

	_, err = svc.SendEmail(input)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
