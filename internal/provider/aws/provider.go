// Package aws implements the provider adapter against AWS using the v2
// SDK. Each service gets its own file with create/delete pairs; the
// Provider dispatches on resource type. Credentials and retry policy come
// from the ambient SDK configuration chain.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/vk/infragrid/internal/provider"
)

// managedByTagKey marks every resource this adapter creates, so operators
// can tell managed resources from hand-made ones.
const (
	managedByTagKey   = "ManagedBy"
	managedByTagValue = "infragrid"
)

// Provider is the AWS adapter.
type Provider struct {
	ec2 *ec2.Client
	ecr *ecr.Client
	ecs *ecs.Client
	elb *elb.Client
	iam *iam.Client
}

// New resolves the ambient SDK configuration for the given region and
// initializes one client per service.
func New(ctx context.Context, region string) (*Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &Provider{
		ec2: ec2.NewFromConfig(cfg),
		ecr: ecr.NewFromConfig(cfg),
		ecs: ecs.NewFromConfig(cfg),
		elb: elb.NewFromConfig(cfg),
		iam: iam.NewFromConfig(cfg),
	}, nil
}

func (p *Provider) Name() string { return "aws" }

// Schemas enumerates the resource types the adapter manages. Exports list
// the live attributes each create call populates.
func (p *Provider) Schemas() []provider.ResourceSchema {
	return []provider.ResourceSchema{
		{Type: "aws_vpc", Description: "Virtual private cloud", Arguments: []string{"cidr_block", "enable_dns_hostnames"}, Exports: []string{"id", "arn"}},
		{Type: "aws_subnet", Description: "VPC subnet", Arguments: []string{"vpc_id", "cidr_block", "availability_zone", "map_public_ip_on_launch"}, Exports: []string{"id", "arn"}},
		{Type: "aws_internet_gateway", Description: "Internet gateway attached to a VPC", Arguments: []string{"vpc_id"}, Exports: []string{"id"}},
		{Type: "aws_route_table", Description: "Route table", Arguments: []string{"vpc_id"}, Exports: []string{"id"}},
		{Type: "aws_route", Description: "Route table entry", Arguments: []string{"route_table_id", "destination_cidr_block", "gateway_id"}, Exports: []string{"id"}},
		{Type: "aws_route_table_association", Description: "Subnet to route table association", Arguments: []string{"subnet_id", "route_table_id"}, Exports: []string{"id"}},
		{Type: "aws_security_group", Description: "Security group", Arguments: []string{"name", "description", "vpc_id"}, Exports: []string{"id", "arn"}},
		{Type: "aws_ecr_repository", Description: "Container image repository", Arguments: []string{"name"}, Exports: []string{"id", "arn", "repository_url"}},
		{Type: "aws_ecs_cluster", Description: "Container orchestration cluster", Arguments: []string{"name"}, Exports: []string{"id", "arn", "name"}},
		{Type: "aws_lb", Description: "Application load balancer", Arguments: []string{"name", "subnets", "security_groups", "internal"}, Exports: []string{"id", "arn", "dns_name"}},
		{Type: "aws_lb_target_group", Description: "Load balancer target group", Arguments: []string{"name", "port", "protocol", "vpc_id", "target_type"}, Exports: []string{"id", "arn"}},
		{Type: "aws_lb_listener", Description: "Load balancer listener", Arguments: []string{"load_balancer_arn", "port", "protocol", "target_group_arn"}, Exports: []string{"id", "arn"}},
		{Type: "aws_iam_role", Description: "IAM role", Arguments: []string{"name", "assume_role_policy"}, Exports: []string{"id", "arn", "name"}},
	}
}

// Create dispatches a resolved resource to the matching service call.
func (p *Provider) Create(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	switch req.Type {
	case "aws_vpc":
		return p.createVPC(ctx, req)
	case "aws_subnet":
		return p.createSubnet(ctx, req)
	case "aws_internet_gateway":
		return p.createInternetGateway(ctx, req)
	case "aws_route_table":
		return p.createRouteTable(ctx, req)
	case "aws_route":
		return p.createRoute(ctx, req)
	case "aws_route_table_association":
		return p.createRouteTableAssociation(ctx, req)
	case "aws_security_group":
		return p.createSecurityGroup(ctx, req)
	case "aws_ecr_repository":
		return p.createECRRepository(ctx, req)
	case "aws_ecs_cluster":
		return p.createECSCluster(ctx, req)
	case "aws_lb":
		return p.createLoadBalancer(ctx, req)
	case "aws_lb_target_group":
		return p.createTargetGroup(ctx, req)
	case "aws_lb_listener":
		return p.createListener(ctx, req)
	case "aws_iam_role":
		return p.createIAMRole(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported resource type %q", req.Type)
	}
}

// Delete dispatches a destruction request to the matching service call.
func (p *Provider) Delete(ctx context.Context, req *provider.DeleteRequest) error {
	switch req.Type {
	case "aws_vpc":
		return p.deleteVPC(ctx, req)
	case "aws_subnet":
		return p.deleteSubnet(ctx, req)
	case "aws_internet_gateway":
		return p.deleteInternetGateway(ctx, req)
	case "aws_route_table":
		return p.deleteRouteTable(ctx, req)
	case "aws_route":
		return p.deleteRoute(ctx, req)
	case "aws_route_table_association":
		return p.deleteRouteTableAssociation(ctx, req)
	case "aws_security_group":
		return p.deleteSecurityGroup(ctx, req)
	case "aws_ecr_repository":
		return p.deleteECRRepository(ctx, req)
	case "aws_ecs_cluster":
		return p.deleteECSCluster(ctx, req)
	case "aws_lb":
		return p.deleteLoadBalancer(ctx, req)
	case "aws_lb_target_group":
		return p.deleteTargetGroup(ctx, req)
	case "aws_lb_listener":
		return p.deleteListener(ctx, req)
	case "aws_iam_role":
		return p.deleteIAMRole(ctx, req)
	default:
		return fmt.Errorf("unsupported resource type %q", req.Type)
	}
}
