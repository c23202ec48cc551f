package cycles_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCycles(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cycles Suite")
}
