package execution

import (
	"context"
	"strings"
)

// packageImports maps an allow-listed package to the line that imports it.
var packageImports = map[string]string{
	"numpy":       "import numpy as np",
	"pandas":      "import pandas as pd",
	"matplotlib":  "import matplotlib.pyplot as plt",
	"scipy":       "import scipy",
	"requests":    "import requests",
	"math":        "import math",
	"random":      "import random",
	"json":        "import json",
	"datetime":    "import datetime",
	"collections": "import collections",
	"itertools":   "import itertools",
	"re":          "import re",
}

func allowList(packages []string) map[string]string {
	allowed := make(map[string]string, len(packages))
	for _, p := range packages {
		p = strings.ToLower(strings.TrimSpace(p))
		if line, ok := packageImports[p]; ok {
			allowed[p] = line
		}
	}
	return allowed
}

// AllowedPackages returns the packages ExecutePython will import, in the
// order of the known package table.
func (c *Client) AllowedPackages() []string {
	var out []string
	for _, p := range []string{"numpy", "pandas", "matplotlib", "scipy", "requests", "math",
		"random", "json", "datetime", "collections", "itertools", "re"} {
		if _, ok := c.allowedImport[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ExecutePython runs Python with import lines prepended for the requested
// packages and the extended Python limits. Packages outside the allow-list
// are ignored.
func (c *Client) ExecutePython(ctx context.Context, code string, packages []string, stdin string) (*Result, error) {
	return c.execute(ctx, c.withImports(code, packages), "python", stdin, c.pythonLimits)
}

func (c *Client) withImports(code string, packages []string) string {
	seen := make(map[string]bool, len(packages))
	var lines []string
	for _, p := range packages {
		p = strings.ToLower(strings.TrimSpace(p))
		line, ok := c.allowedImport[p]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return code
	}
	return strings.Join(lines, "\n") + "\n\n" + code
}
