package components

import (
	"fmt"
	"strings"

	"github.com/eleven-am/envcheck/internal/domain"
)

const CheckVPCEndpoints = "vpc-endpoints"

var requiredEndpointSuffixes = []string{
	"airflow.api",
	"airflow.env",
	"airflow.ops",
	"sqs",
	"ecr.api",
	"ecr.dkr",
	"logs",
	"monitoring",
	"kms",
	"s3",
}

// RequiredEndpointServices lists the service names a private environment in
// region cannot run without.
func RequiredEndpointServices(region string) []string {
	services := make([]string, len(requiredEndpointSuffixes))
	for i, suffix := range requiredEndpointSuffixes {
		services[i] = fmt.Sprintf("com.amazonaws.%s.%s", region, suffix)
	}
	return services
}

type VPCEndpoints struct {
	vpcID     string
	region    string
	endpoints []domain.VPCEndpointData
}

func NewVPCEndpoints(vpcID, region string, endpoints []domain.VPCEndpointData) *VPCEndpoints {
	return &VPCEndpoints{
		vpcID:     vpcID,
		region:    region,
		endpoints: endpoints,
	}
}

// Check reports required services without an available endpoint. Endpoints
// in any other state (pending, rejected, failed) do not count.
func (v *VPCEndpoints) Check() []domain.CheckResult {
	available := make(map[string]bool)
	pending := make(map[string]string)
	for _, ep := range v.endpoints {
		if ep.State == "available" {
			available[ep.ServiceName] = true
		} else {
			pending[ep.ServiceName] = ep.State
		}
	}

	var missing []string
	var results []domain.CheckResult
	for _, service := range RequiredEndpointServices(v.region) {
		if available[service] {
			continue
		}
		if state, ok := pending[service]; ok {
			results = append(results, domain.Fail(CheckVPCEndpoints, v.vpcID,
				fmt.Sprintf("endpoint for %s is %s", service, state)))
			continue
		}
		missing = append(missing, service)
	}

	if len(missing) > 0 {
		results = append(results, domain.Fail(CheckVPCEndpoints, v.vpcID,
			fmt.Sprintf("missing endpoints: %s", strings.Join(missing, ", "))))
	}
	if len(results) == 0 {
		results = append(results, domain.Pass(CheckVPCEndpoints, v.vpcID,
			fmt.Sprintf("all %d required endpoints available", len(requiredEndpointSuffixes))))
	}
	return results
}
