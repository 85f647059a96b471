package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eleven-am/envcheck/internal/domain"
)

const CheckSubnets = "subnets"

// RequiredSubnets is the number of private subnets an environment spans.
const RequiredSubnets = 2

type Subnets struct {
	data        []*domain.SubnetData
	minFreeIPs  int
	warnFreeIPs int
}

func NewSubnets(data []*domain.SubnetData, minFreeIPs, warnFreeIPs int) *Subnets {
	if warnFreeIPs < minFreeIPs {
		warnFreeIPs = minFreeIPs
	}
	return &Subnets{
		data:        data,
		minFreeIPs:  minFreeIPs,
		warnFreeIPs: warnFreeIPs,
	}
}

func (s *Subnets) Check() []domain.CheckResult {
	var results []domain.CheckResult

	ids := make([]string, 0, len(s.data))
	for _, subnet := range s.data {
		ids = append(ids, subnet.ID)
	}
	all := strings.Join(ids, ",")

	if len(s.data) != RequiredSubnets {
		results = append(results, domain.Fail(CheckSubnets, all,
			fmt.Sprintf("expected %d subnets, found %d", RequiredSubnets, len(s.data))))
	}

	if len(s.data) > 1 {
		results = append(results, s.checkZones(all), s.checkVPC(all))
	}

	for _, subnet := range s.data {
		results = append(results, s.checkCapacity(subnet))
		if subnet.MapPublicIPOnLaunch {
			results = append(results, domain.Warn(CheckSubnets, subnet.ID,
				"subnet assigns public IPs on launch; environment subnets should be private"))
		}
	}
	return results
}

func (s *Subnets) checkZones(resource string) domain.CheckResult {
	zones := make(map[string][]string)
	for _, subnet := range s.data {
		zones[subnet.AvailabilityZone] = append(zones[subnet.AvailabilityZone], subnet.ID)
	}
	names := make([]string, 0, len(zones))
	for zone := range zones {
		names = append(names, zone)
	}
	sort.Strings(names)

	for _, zone := range names {
		if members := zones[zone]; len(members) > 1 {
			sort.Strings(members)
			return domain.Fail(CheckSubnets, resource,
				fmt.Sprintf("subnets %s share availability zone %s", strings.Join(members, ", "), zone))
		}
	}
	return domain.Pass(CheckSubnets, resource, "subnets are in distinct availability zones")
}

func (s *Subnets) checkVPC(resource string) domain.CheckResult {
	vpc := s.data[0].VPCID
	for _, subnet := range s.data[1:] {
		if subnet.VPCID != vpc {
			return domain.Fail(CheckSubnets, resource,
				fmt.Sprintf("subnets span VPCs %s and %s", vpc, subnet.VPCID))
		}
	}
	return domain.Pass(CheckSubnets, resource, fmt.Sprintf("subnets share VPC %s", vpc))
}

func (s *Subnets) checkCapacity(subnet *domain.SubnetData) domain.CheckResult {
	msg := fmt.Sprintf("%d free IP addresses in %s", subnet.AvailableIPs, subnet.CIDRBlock)
	switch {
	case subnet.AvailableIPs < s.minFreeIPs:
		return domain.Fail(CheckSubnets, subnet.ID, fmt.Sprintf("%s, at least %d required", msg, s.minFreeIPs))
	case subnet.AvailableIPs < s.warnFreeIPs:
		return domain.Warn(CheckSubnets, subnet.ID, fmt.Sprintf("%s, workers may not scale", msg))
	default:
		return domain.Pass(CheckSubnets, subnet.ID, msg)
	}
}
