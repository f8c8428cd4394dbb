// Package mem implements an in-memory provider adapter. It manages the
// same resource types as the AWS adapter but fabricates identifiers
// instead of calling a cloud API, which makes it the backend for dry runs
// and for the executor's test suite.
package mem

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

// typeInfo describes how the adapter fabricates one resource type.
type typeInfo struct {
	idPrefix    string
	description string
	exports     []string
}

// types mirrors the AWS adapter's resource surface.
var types = map[string]typeInfo{
	"aws_vpc":                     {"vpc", "Virtual private cloud", []string{"id", "arn"}},
	"aws_subnet":                  {"subnet", "VPC subnet", []string{"id", "arn"}},
	"aws_internet_gateway":        {"igw", "Internet gateway", []string{"id"}},
	"aws_route_table":             {"rtb", "Route table", []string{"id"}},
	"aws_route":                   {"r", "Route table entry", []string{"id"}},
	"aws_route_table_association": {"rtbassoc", "Subnet to route table association", []string{"id"}},
	"aws_security_group":          {"sg", "Security group", []string{"id", "arn"}},
	"aws_ecr_repository":          {"repo", "Container image repository", []string{"id", "arn", "repository_url"}},
	"aws_ecs_cluster":             {"cluster", "Container orchestration cluster", []string{"id", "arn", "name"}},
	"aws_lb":                      {"lb", "Application load balancer", []string{"id", "arn", "dns_name"}},
	"aws_lb_target_group":         {"tg", "Load balancer target group", []string{"id", "arn"}},
	"aws_lb_listener":             {"listener", "Load balancer listener", []string{"id", "arn"}},
	"aws_iam_role":                {"role", "IAM role", []string{"id", "arn", "name"}},
}

// Provider is the in-memory adapter. Safe for concurrent use.
type Provider struct {
	mu       sync.Mutex
	objects  map[string]map[string]cty.Value
	order    []string
	failures map[string]error
}

// Option configures a Provider.
type Option func(*Provider)

// WithFailure makes creation of the resource at the given address
// ("<type>.<name>") fail with the provided error. Used by tests to exercise
// failure isolation.
func WithFailure(address string, err error) Option {
	return func(p *Provider) { p.failures[address] = err }
}

// New creates an empty in-memory provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		objects:  make(map[string]map[string]cty.Value),
		failures: make(map[string]error),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return "mem" }

// Schemas enumerates every fabricated resource type.
func (p *Provider) Schemas() []provider.ResourceSchema {
	schemas := make([]provider.ResourceSchema, 0, len(types))
	for typ, info := range types {
		schemas = append(schemas, provider.ResourceSchema{
			Type:        typ,
			Description: info.description,
			Exports:     info.exports,
		})
	}
	return schemas
}

// Create fabricates live attributes for the requested resource.
func (p *Provider) Create(ctx context.Context, req *provider.CreateRequest) (*provider.CreateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, ok := types[req.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported resource type %q", req.Type)
	}

	addr := req.Type + "." + req.Name
	p.mu.Lock()
	defer p.mu.Unlock()

	if err, failing := p.failures[addr]; failing {
		return nil, err
	}
	if _, exists := p.objects[addr]; exists {
		return nil, fmt.Errorf("resource %s already exists", addr)
	}

	id := fmt.Sprintf("%s-%s", info.idPrefix, uuid.NewString()[:8])
	live := map[string]cty.Value{
		"id": cty.StringVal(id),
	}
	for _, export := range info.exports {
		switch export {
		case "arn":
			live["arn"] = cty.StringVal(fmt.Sprintf("arn:mem:%s:%s/%s", req.Type, req.Name, id))
		case "name":
			live["name"] = cty.StringVal(req.Name)
		case "repository_url":
			live["repository_url"] = cty.StringVal(fmt.Sprintf("registry.mem.local/%s", req.Name))
		case "dns_name":
			live["dns_name"] = cty.StringVal(fmt.Sprintf("%s.elb.mem.local", id))
		}
	}

	p.objects[addr] = live
	p.order = append(p.order, addr)
	return &provider.CreateResult{LiveAttributes: live}, nil
}

// Delete forgets a fabricated resource.
func (p *Provider) Delete(ctx context.Context, req *provider.DeleteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := req.Type + "." + req.Name
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.objects[addr]; !exists {
		return fmt.Errorf("resource %s does not exist", addr)
	}
	delete(p.objects, addr)
	return nil
}

// CreateOrder returns the addresses of every created resource in creation
// order. Tests assert ordering guarantees against this.
func (p *Provider) CreateOrder() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	order := make([]string, len(p.order))
	copy(order, p.order)
	return order
}

// Exists reports whether the resource at the given address is currently
// held by the adapter.
func (p *Provider) Exists(address string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.objects[address]
	return ok
}
