package mail

import (
	"context"
	"log/slog"

	"restaurant-backend/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESSender struct {
	client *ses.Client
	from   string
}

func NewSESSender(ctx context.Context, region, fromEmail string) (*SESSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errs.Wrap(err, "failed to load AWS config")
	}

	return &SESSender{
		client: ses.NewFromConfig(awsCfg),
		from:   fromEmail,
	}, nil
}

func (s *SESSender) Send(ctx context.Context, recipient, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return errs.Wrap(err, "ses send failed")
	}

	slog.Info("email sent via SES",
		"recipient", recipient,
		"message_id", aws.ToString(result.MessageId),
	)
	return nil
}
