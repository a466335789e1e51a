// Package problem defines a belt-balancer problem instance: grid dimensions,
// source count, boundary flow pledges, per-edge capacity, feature gates, and
// optional mixer-network plan or warm-start seed/hints. Instances can be
// built programmatically or loaded from YAML, mirroring the teacher
// pipeline's Config/LoadConfig shape.
package problem
