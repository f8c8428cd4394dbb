package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

func (p *Provider) createECSCluster(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}

	out, err := p.ecs.CreateCluster(ctx, &ecs.CreateClusterInput{
		ClusterName: aws.String(name),
		Tags: []ecsTypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(req.Name)},
			{Key: aws.String(managedByTagKey), Value: aws.String(managedByTagValue)},
		},
	})
	if err != nil {
		return nil, err
	}

	cluster := out.Cluster
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":   cty.StringVal(aws.ToString(cluster.ClusterArn)),
		"arn":  cty.StringVal(aws.ToString(cluster.ClusterArn)),
		"name": cty.StringVal(aws.ToString(cluster.ClusterName)),
	}}, nil
}

func (p *Provider) deleteECSCluster(ctx context.Context, req *provider.DeleteRequest) error {
	arn, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ecs.DeleteCluster(ctx, &ecs.DeleteClusterInput{Cluster: aws.String(arn)})
	return err
}
