package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

// ec2Tags builds the standard tag set for an EC2-family resource.
func ec2Tags(resourceType ec2Types.ResourceType, name string) []ec2Types.TagSpecification {
	return []ec2Types.TagSpecification{{
		ResourceType: resourceType,
		Tags: []ec2Types.Tag{
			{Key: aws.String("Name"), Value: aws.String(name)},
			{Key: aws.String(managedByTagKey), Value: aws.String(managedByTagValue)},
		},
	}}
}

func (p *Provider) createVPC(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	cidr, err := requireString(req.Attributes, "cidr_block")
	if err != nil {
		return nil, err
	}

	out, err := p.ec2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:         aws.String(cidr),
		TagSpecifications: ec2Tags(ec2Types.ResourceTypeVpc, req.Name),
	})
	if err != nil {
		return nil, err
	}
	vpcID := aws.ToString(out.Vpc.VpcId)

	if boolAttr(req.Attributes, "enable_dns_hostnames") {
		_, err = p.ec2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
			VpcId:              aws.String(vpcID),
			EnableDnsHostnames: &ec2Types.AttributeBooleanValue{Value: aws.Bool(true)},
		})
		if err != nil {
			return nil, fmt.Errorf("vpc %s created but enabling DNS hostnames failed: %w", vpcID, err)
		}
	}

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":  cty.StringVal(vpcID),
		"arn": cty.StringVal(fmt.Sprintf("arn:aws:ec2:::vpc/%s", vpcID)),
	}}, nil
}

func (p *Provider) deleteVPC(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ec2.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(id)})
	return err
}

func (p *Provider) createSubnet(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	vpcID, err := requireString(req.Attributes, "vpc_id")
	if err != nil {
		return nil, err
	}
	cidr, err := requireString(req.Attributes, "cidr_block")
	if err != nil {
		return nil, err
	}

	input := &ec2.CreateSubnetInput{
		VpcId:             aws.String(vpcID),
		CidrBlock:         aws.String(cidr),
		TagSpecifications: ec2Tags(ec2Types.ResourceTypeSubnet, req.Name),
	}
	if az, ok := stringAttr(req.Attributes, "availability_zone"); ok {
		input.AvailabilityZone = aws.String(az)
	}

	out, err := p.ec2.CreateSubnet(ctx, input)
	if err != nil {
		return nil, err
	}
	subnetID := aws.ToString(out.Subnet.SubnetId)

	if boolAttr(req.Attributes, "map_public_ip_on_launch") {
		_, err = p.ec2.ModifySubnetAttribute(ctx, &ec2.ModifySubnetAttributeInput{
			SubnetId:            aws.String(subnetID),
			MapPublicIpOnLaunch: &ec2Types.AttributeBooleanValue{Value: aws.Bool(true)},
		})
		if err != nil {
			return nil, fmt.Errorf("subnet %s created but enabling public IPs failed: %w", subnetID, err)
		}
	}

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":  cty.StringVal(subnetID),
		"arn": cty.StringVal(aws.ToString(out.Subnet.SubnetArn)),
	}}, nil
}

func (p *Provider) deleteSubnet(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ec2.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(id)})
	return err
}

func (p *Provider) createInternetGateway(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	vpcID, err := requireString(req.Attributes, "vpc_id")
	if err != nil {
		return nil, err
	}

	out, err := p.ec2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: ec2Tags(ec2Types.ResourceTypeInternetGateway, req.Name),
	})
	if err != nil {
		return nil, err
	}
	igwID := aws.ToString(out.InternetGateway.InternetGatewayId)

	_, err = p.ec2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(igwID),
		VpcId:             aws.String(vpcID),
	})
	if err != nil {
		return nil, fmt.Errorf("internet gateway %s created but attach failed: %w", igwID, err)
	}

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id": cty.StringVal(igwID),
	}}, nil
}

func (p *Provider) deleteInternetGateway(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	if vpcID, ok := stringAttr(req.Attributes, "vpc_id"); ok {
		_, err = p.ec2.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
			InternetGatewayId: aws.String(id),
			VpcId:             aws.String(vpcID),
		})
		if err != nil {
			return err
		}
	}
	_, err = p.ec2.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{InternetGatewayId: aws.String(id)})
	return err
}

func (p *Provider) createRouteTable(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	vpcID, err := requireString(req.Attributes, "vpc_id")
	if err != nil {
		return nil, err
	}

	out, err := p.ec2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
		VpcId:             aws.String(vpcID),
		TagSpecifications: ec2Tags(ec2Types.ResourceTypeRouteTable, req.Name),
	})
	if err != nil {
		return nil, err
	}

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id": cty.StringVal(aws.ToString(out.RouteTable.RouteTableId)),
	}}, nil
}

func (p *Provider) deleteRouteTable(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ec2.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{RouteTableId: aws.String(id)})
	return err
}

func (p *Provider) createRoute(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	rtbID, err := requireString(req.Attributes, "route_table_id")
	if err != nil {
		return nil, err
	}
	destination, err := requireString(req.Attributes, "destination_cidr_block")
	if err != nil {
		return nil, err
	}
	gatewayID, err := requireString(req.Attributes, "gateway_id")
	if err != nil {
		return nil, err
	}

	_, err = p.ec2.CreateRoute(ctx, &ec2.CreateRouteInput{
		RouteTableId:         aws.String(rtbID),
		DestinationCidrBlock: aws.String(destination),
		GatewayId:            aws.String(gatewayID),
	})
	if err != nil {
		return nil, err
	}

	// Routes have no identifier of their own; the table and destination
	// together name the entry.
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id": cty.StringVal(fmt.Sprintf("%s_%s", rtbID, destination)),
	}}, nil
}

func (p *Provider) deleteRoute(ctx context.Context, req *provider.DeleteRequest) error {
	rtbID, err := requireString(req.Attributes, "route_table_id")
	if err != nil {
		return err
	}
	destination, err := requireString(req.Attributes, "destination_cidr_block")
	if err != nil {
		return err
	}
	_, err = p.ec2.DeleteRoute(ctx, &ec2.DeleteRouteInput{
		RouteTableId:         aws.String(rtbID),
		DestinationCidrBlock: aws.String(destination),
	})
	return err
}

func (p *Provider) createRouteTableAssociation(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	subnetID, err := requireString(req.Attributes, "subnet_id")
	if err != nil {
		return nil, err
	}
	rtbID, err := requireString(req.Attributes, "route_table_id")
	if err != nil {
		return nil, err
	}

	out, err := p.ec2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
		SubnetId:     aws.String(subnetID),
		RouteTableId: aws.String(rtbID),
	})
	if err != nil {
		return nil, err
	}

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id": cty.StringVal(aws.ToString(out.AssociationId)),
	}}, nil
}

func (p *Provider) deleteRouteTableAssociation(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ec2.DisassociateRouteTable(ctx, &ec2.DisassociateRouteTableInput{AssociationId: aws.String(id)})
	return err
}

func (p *Provider) createSecurityGroup(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}
	vpcID, err := requireString(req.Attributes, "vpc_id")
	if err != nil {
		return nil, err
	}
	description, ok := stringAttr(req.Attributes, "description")
	if !ok {
		description = "Managed by infragrid"
	}

	out, err := p.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:         aws.String(name),
		Description:       aws.String(description),
		VpcId:             aws.String(vpcID),
		TagSpecifications: ec2Tags(ec2Types.ResourceTypeSecurityGroup, req.Name),
	})
	if err != nil {
		return nil, err
	}
	groupID := aws.ToString(out.GroupId)

	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":  cty.StringVal(groupID),
		"arn": cty.StringVal(fmt.Sprintf("arn:aws:ec2:::security-group/%s", groupID)),
	}}, nil
}

func (p *Provider) deleteSecurityGroup(ctx context.Context, req *provider.DeleteRequest) error {
	id, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.ec2.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{GroupId: aws.String(id)})
	return err
}
