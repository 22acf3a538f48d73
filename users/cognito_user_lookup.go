package users

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoLookup checks user existence against the Cognito user pool that also
// backs the JWT auth middleware.
type CognitoLookup struct {
	client     *cognitoidentityprovider.Client
	userPoolId string
}

// NewCognitoLookup creates a lookup with aws config located in path
// ~/.aws/config. The user pool id is read from COGNITO_USER_POOL_ID.
func NewCognitoLookup() (*CognitoLookup, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, err
	}
	return &CognitoLookup{
		client:     cognitoidentityprovider.NewFromConfig(cfg),
		userPoolId: os.Getenv("COGNITO_USER_POOL_ID"),
	}, nil
}

func (l *CognitoLookup) Exists(ctx context.Context, userId string) (bool, error) {
	_, err := l.client.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(l.userPoolId),
		Username:   aws.String(userId),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
