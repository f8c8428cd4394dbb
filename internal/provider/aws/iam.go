package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

func (p *Provider) createIAMRole(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}
	assumePolicy, err := requireString(req.Attributes, "assume_role_policy")
	if err != nil {
		return nil, err
	}

	out, err := p.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(assumePolicy),
		Tags: []iamTypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(req.Name)},
			{Key: aws.String(managedByTagKey), Value: aws.String(managedByTagValue)},
		},
	})
	if err != nil {
		return nil, err
	}

	role := out.Role
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":   cty.StringVal(aws.ToString(role.RoleName)),
		"arn":  cty.StringVal(aws.ToString(role.Arn)),
		"name": cty.StringVal(aws.ToString(role.RoleName)),
	}}, nil
}

func (p *Provider) deleteIAMRole(ctx context.Context, req *provider.DeleteRequest) error {
	name, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)})
	return err
}
