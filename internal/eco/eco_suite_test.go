package eco_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEco(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Eco Suite")
}
