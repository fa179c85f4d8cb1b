// Package treemap computes the visual attributes of treemap nodes.
//
// The central type is [NodeAttributes]: the immutable visual representation
// of a single laid-out node (footprint, geo centre, label, colour, level,
// leaf/dummy flags). Construction resolves the node's colour once, using a
// hierarchical inheritance scheme: a child derives its colour from its
// parent's already-resolved colour through a bounded random perturbation,
// which produces coherent yet distinguishable colour families across a tree
// without any central coordination.
//
// Colour resolution follows a strict priority order:
//
//  1. An explicit colour override is used verbatim.
//  2. Without a parent colour, the colour derives deterministically from the
//     node's hue at fixed saturation 0.4 and brightness 0.8.
//  3. With a parent colour, each RGB channel is independently perturbed by
//     a uniform draw scaled by the mutation magnitude, then clamped.
//
// Construction also registers the node's integer outer bounds with the
// render context so callers can track the overall canvas extent.
//
// Callers must construct attributes in a parent-before-child order so a
// child's parent colour is resolved before the child needs it; see
// [Context] for the capabilities construction consumes.
package treemap
