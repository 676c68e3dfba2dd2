// Package shadow builds stencil shadow volumes on the CPU.
//
// A Node flattens its mesh into one position/index array, derives triangle
// adjacency when the mesh shape changes, and then, for every shadow-casting
// light in range, classifies triangles against the light, collects silhouette
// edges and extrudes them into a triangle soup. Each volume is a flat list of
// points in object space, three per triangle, ready for a renderer to draw into
// a stencil buffer with the object's world matrix.
//
// Volume triangles are wound clockwise when seen from outside the volume.
//
// Everything here is single-threaded and meant to run once per frame before
// the volumes are drawn. Volumes are reused across frames and must not be
// read while Update runs.
package shadow
