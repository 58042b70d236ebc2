package main

import (
	goflag "flag"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"open-cluster-management.io/retirement/pkg/cmd"
)

func main() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	cmd.Execute()
}
