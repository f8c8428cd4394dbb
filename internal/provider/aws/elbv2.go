package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbTypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

func elbTags(name string) []elbTypes.Tag {
	return []elbTypes.Tag{
		{Key: aws.String("Name"), Value: aws.String(name)},
		{Key: aws.String(managedByTagKey), Value: aws.String(managedByTagValue)},
	}
}

func (p *Provider) createLoadBalancer(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}
	subnets, err := stringList(req.Attributes, "subnets")
	if err != nil {
		return nil, err
	}
	if len(subnets) == 0 {
		return nil, fmt.Errorf("missing required attribute %q", "subnets")
	}
	securityGroups, err := stringList(req.Attributes, "security_groups")
	if err != nil {
		return nil, err
	}

	scheme := elbTypes.LoadBalancerSchemeEnumInternetFacing
	if boolAttr(req.Attributes, "internal") {
		scheme = elbTypes.LoadBalancerSchemeEnumInternal
	}

	out, err := p.elb.CreateLoadBalancer(ctx, &elb.CreateLoadBalancerInput{
		Name:           aws.String(name),
		Type:           elbTypes.LoadBalancerTypeEnumApplication,
		Scheme:         scheme,
		Subnets:        subnets,
		SecurityGroups: securityGroups,
		Tags:           elbTags(req.Name),
	})
	if err != nil {
		return nil, err
	}
	if len(out.LoadBalancers) == 0 {
		return nil, fmt.Errorf("load balancer %s was not returned by the API", name)
	}

	lb := out.LoadBalancers[0]
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":       cty.StringVal(aws.ToString(lb.LoadBalancerArn)),
		"arn":      cty.StringVal(aws.ToString(lb.LoadBalancerArn)),
		"dns_name": cty.StringVal(aws.ToString(lb.DNSName)),
	}}, nil
}

func (p *Provider) deleteLoadBalancer(ctx context.Context, req *provider.DeleteRequest) error {
	arn, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.elb.DeleteLoadBalancer(ctx, &elb.DeleteLoadBalancerInput{LoadBalancerArn: aws.String(arn)})
	return err
}

func (p *Provider) createTargetGroup(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	name, err := requireString(req.Attributes, "name")
	if err != nil {
		return nil, err
	}
	vpcID, err := requireString(req.Attributes, "vpc_id")
	if err != nil {
		return nil, err
	}
	port, ok := int32Attr(req.Attributes, "port")
	if !ok {
		return nil, fmt.Errorf("missing required attribute %q", "port")
	}

	protocol := elbTypes.ProtocolEnumHttp
	if proto, ok := stringAttr(req.Attributes, "protocol"); ok {
		protocol = elbTypes.ProtocolEnum(proto)
	}
	targetType := elbTypes.TargetTypeEnumIp
	if tt, ok := stringAttr(req.Attributes, "target_type"); ok {
		targetType = elbTypes.TargetTypeEnum(tt)
	}

	out, err := p.elb.CreateTargetGroup(ctx, &elb.CreateTargetGroupInput{
		Name:       aws.String(name),
		Port:       aws.Int32(port),
		Protocol:   protocol,
		VpcId:      aws.String(vpcID),
		TargetType: targetType,
		Tags:       elbTags(req.Name),
	})
	if err != nil {
		return nil, err
	}
	if len(out.TargetGroups) == 0 {
		return nil, fmt.Errorf("target group %s was not returned by the API", name)
	}

	tg := out.TargetGroups[0]
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":  cty.StringVal(aws.ToString(tg.TargetGroupArn)),
		"arn": cty.StringVal(aws.ToString(tg.TargetGroupArn)),
	}}, nil
}

func (p *Provider) deleteTargetGroup(ctx context.Context, req *provider.DeleteRequest) error {
	arn, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.elb.DeleteTargetGroup(ctx, &elb.DeleteTargetGroupInput{TargetGroupArn: aws.String(arn)})
	return err
}

func (p *Provider) createListener(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	lbARN, err := requireString(req.Attributes, "load_balancer_arn")
	if err != nil {
		return nil, err
	}
	tgARN, err := requireString(req.Attributes, "target_group_arn")
	if err != nil {
		return nil, err
	}
	port, ok := int32Attr(req.Attributes, "port")
	if !ok {
		return nil, fmt.Errorf("missing required attribute %q", "port")
	}

	protocol := elbTypes.ProtocolEnumHttp
	if proto, ok := stringAttr(req.Attributes, "protocol"); ok {
		protocol = elbTypes.ProtocolEnum(proto)
	}

	out, err := p.elb.CreateListener(ctx, &elb.CreateListenerInput{
		LoadBalancerArn: aws.String(lbARN),
		Port:            aws.Int32(port),
		Protocol:        protocol,
		DefaultActions: []elbTypes.Action{{
			Type:           elbTypes.ActionTypeEnumForward,
			TargetGroupArn: aws.String(tgARN),
		}},
		Tags: elbTags(req.Name),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Listeners) == 0 {
		return nil, fmt.Errorf("listener for %s was not returned by the API", lbARN)
	}

	listener := out.Listeners[0]
	return &provider.CreateResult{LiveAttributes: map[string]cty.Value{
		"id":  cty.StringVal(aws.ToString(listener.ListenerArn)),
		"arn": cty.StringVal(aws.ToString(listener.ListenerArn)),
	}}, nil
}

func (p *Provider) deleteListener(ctx context.Context, req *provider.DeleteRequest) error {
	arn, err := requireString(req.Attributes, "id")
	if err != nil {
		return err
	}
	_, err = p.elb.DeleteListener(ctx, &elb.DeleteListenerInput{ListenerArn: aws.String(arn)})
	return err
}
