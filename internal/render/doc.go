/*
Package render is the entry point of per-frame evaluation.

Evaluate resolves every property of a composition at a frame: timeline
values first, then the layer graphs' overrides, then array modifier
expansion. It then composes each layer's world transforms through parent
layers and, in recursive mode, descends into nested compositions with the
transform of every iteration of the layer showing them.

The property evaluation of a (composition, frame) pair does not depend on
where the composition is placed, so it is computed once per call and reused
by every visit. Transforms are composed per visit.
*/
package render
