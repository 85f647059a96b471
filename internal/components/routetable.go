package components

import (
	"fmt"
	"net"

	"github.com/yl2chen/cidranger"

	"github.com/eleven-am/envcheck/internal/domain"
)

const CheckRouteTable = "route-table"

// internetProbe stands in for any public destination when deciding how a
// subnet reaches the internet.
var internetProbe = net.ParseIP("198.51.100.1")

type routeEntry struct {
	network net.IPNet
	route   *domain.Route
}

func (e *routeEntry) Network() net.IPNet {
	return e.network
}

type RouteTable struct {
	data     *domain.RouteTableData
	subnetID string
	ranger   cidranger.Ranger
}

// NewRouteTable indexes the active IPv4 routes of data. Blackhole routes and
// destinations that cannot be parsed or indexed are skipped.
func NewRouteTable(data *domain.RouteTableData, subnetID string) *RouteTable {
	ranger := cidranger.NewPCTrieRanger()
	for i := range data.Routes {
		route := &data.Routes[i]
		if route.State == "blackhole" {
			continue
		}
		network, ok := parseNetwork(route.DestinationCIDR)
		if !ok {
			continue
		}
		if err := ranger.Insert(&routeEntry{network: network, route: route}); err != nil {
			continue
		}
	}
	return &RouteTable{
		data:     data,
		subnetID: subnetID,
		ranger:   ranger,
	}
}

// Lookup returns the route with the longest prefix containing ip, or nil.
func (rt *RouteTable) Lookup(ip net.IP) *domain.Route {
	entries, err := rt.ranger.ContainingNetworks(ip)
	if err != nil {
		return nil
	}

	var best *routeEntry
	longestPrefix := -1
	for _, entry := range entries {
		re, ok := entry.(*routeEntry)
		if !ok {
			continue
		}
		if bits := prefixBits(re.network); bits > longestPrefix {
			best = re
			longestPrefix = bits
		}
	}
	if best == nil {
		return nil
	}
	return best.route
}

// CheckInternetAccess decides whether the subnet's default path is
// acceptable. Environment subnets must be private: an internet gateway route
// fails. Without a NAT route a private environment still works through VPC
// endpoints, but a public webserver does not.
func (rt *RouteTable) CheckInternetAccess(privateWebserver bool) domain.CheckResult {
	route := rt.Lookup(internetProbe)
	if route == nil {
		if privateWebserver {
			return domain.Warn(CheckRouteTable, rt.GetID(),
				"no route to the internet; VPC endpoints are required for all services")
		}
		return domain.Fail(CheckRouteTable, rt.GetID(),
			"no route to the internet; a public webserver needs a NAT gateway")
	}

	switch route.TargetType {
	case domain.TargetInternetGateway:
		return domain.Fail(CheckRouteTable, rt.GetID(),
			fmt.Sprintf("%s routes to internet gateway %s; subnet is public", route.DestinationCIDR, route.TargetID))
	case domain.TargetNATGateway:
		return domain.Pass(CheckRouteTable, rt.GetID(),
			fmt.Sprintf("%s routes to NAT gateway %s", route.DestinationCIDR, route.TargetID))
	default:
		return domain.Warn(CheckRouteTable, rt.GetID(),
			fmt.Sprintf("%s routes to %s %s; confirm it provides outbound access", route.DestinationCIDR, route.TargetType, route.TargetID))
	}
}

func (rt *RouteTable) GetID() string {
	return resourceID(rt.subnetID, rt.data.ID)
}
