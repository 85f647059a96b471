// Package validate holds the argument predicates checked before any AWS call
// is made: SDK version, region allow-list, and identifier syntax.
package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/asaskevich/govalidator"

	"github.com/eleven-am/envcheck/internal/domain"
)

var ErrInvalidArgument = errors.New("invalid argument")

const (
	environmentNamePattern = `^[a-zA-Z][0-9a-zA-Z\-_]*$`
	profileNamePattern     = `^[a-zA-Z0-9_\-]+$`
	maxEnvironmentName     = 80
)

// Regions where the managed Airflow service is available.
var SupportedRegions = []string{
	"us-east-1",
	"us-east-2",
	"us-west-2",
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-northeast-1",
	"eu-central-1",
	"eu-west-1",
	"eu-north-1",
}

// Region returns region unchanged when it is on the allow-list.
func Region(region string) (string, error) {
	if !govalidator.IsIn(region, SupportedRegions...) {
		return "", fmt.Errorf("%w: %s is an invalid REGION value", ErrInvalidArgument, region)
	}
	return region, nil
}

// EnvironmentName requires a leading letter followed by letters, digits,
// hyphens or underscores, at most 80 characters.
func EnvironmentName(name string) (string, error) {
	if !govalidator.StringMatches(name, environmentNamePattern) ||
		!govalidator.StringLength(name, "1", strconv.Itoa(maxEnvironmentName)) {
		return "", fmt.Errorf("%w: %s is an invalid environment name value", ErrInvalidArgument, name)
	}
	return name, nil
}

func ProfileName(name string) (string, error) {
	if !govalidator.StringMatches(name, profileNamePattern) {
		return "", fmt.Errorf("%w: %s is an invalid profile name value", ErrInvalidArgument, name)
	}
	return name, nil
}

func Port(port int) error {
	if port < 1 || port > domain.MaxPort {
		return fmt.Errorf("%w: %d is an invalid port value", ErrInvalidArgument, port)
	}
	return nil
}
