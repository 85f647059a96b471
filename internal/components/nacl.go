package components

import (
	"fmt"

	"github.com/eleven-am/envcheck/internal/acl"
	"github.com/eleven-am/envcheck/internal/domain"
)

const CheckNACL = "nacl"

// DefaultRequiredPorts are the TCP ports the environment needs open in both
// directions: the metadata database and HTTPS to service endpoints.
var DefaultRequiredPorts = []int{5432, 443}

type NACL struct {
	data     *domain.NACLData
	subnetID string
}

func NewNACL(data *domain.NACLData, subnetID string) *NACL {
	return &NACL{
		data:     data,
		subnetID: subnetID,
	}
}

func (n *NACL) EvaluateInbound(port int) string {
	return acl.CheckIngress(n.data.InboundRules, port, port)
}

func (n *NACL) EvaluateOutbound(port int) string {
	return acl.CheckEgress(n.data.OutboundRules, port)
}

// CheckPorts produces one result per port and direction. A port that is not
// confirmed open fails.
func (n *NACL) CheckPorts(ports []int) []domain.CheckResult {
	results := make([]domain.CheckResult, 0, 2*len(ports))
	for _, port := range ports {
		results = append(results,
			n.result(domain.DirectionInbound, port, n.EvaluateInbound(port)),
			n.result(domain.DirectionOutbound, port, n.EvaluateOutbound(port)),
		)
	}
	return results
}

func (n *NACL) result(direction domain.Direction, port int, confirmation string) domain.CheckResult {
	if confirmation != "" {
		return domain.Pass(CheckNACL, n.GetID(), confirmation)
	}
	return domain.Fail(CheckNACL, n.GetID(),
		fmt.Sprintf("%s tcp port %d is not confirmed open by %s", direction, port, n.data.ID))
}

func (n *NACL) GetID() string {
	return resourceID(n.subnetID, n.data.ID)
}
