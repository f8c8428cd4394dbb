package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrTypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

func (p *Provider) createECRRepository(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}

	out, err := p.ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(name),
		Tags: []ecrTypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(req.Name)},
			{Key: aws.String(managedByTagKey), Value: aws.String(managedByTagValue)},
		},
	})
	if err != nil {
		return nil, err
	}

	repo := out.Repository
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":             cty.StringVal(aws.ToString(repo.RepositoryName)),
		"arn":            cty.StringVal(aws.ToString(repo.RepositoryArn)),
		"repository_url": cty.StringVal(aws.ToString(repo.RepositoryUri)),
	}}, nil
}

func (p *Provider) deleteECRRepository(ctx context.Context, req *provider.DeleteRequest) error {
	name, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	// Force removes any images still in the repository.
	_, err = p.ecr.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
		RepositoryName: aws.String(name),
		Force:          true,
	})
	return err
}
