// Package sphere loads and samples HRIR spheres: triangulated meshes of
// directions where each vertex carries a measured head-related impulse
// response for the left and right ear.
//
// # File format
//
// Spheres are stored in a little-endian binary layout: a 4-byte "HRIR"
// signature, then u32 sample rate, impulse length, vertex count and index
// count, the triangle index list, and per vertex a 3-float position
// followed by the left- and right-ear impulse responses. Prebuilt spheres
// for IRCAM measurement sets are available from the hrir_sphere_builder
// project.
//
// At load time each impulse response is zero-padded to the overlap-save
// working length (block length + impulse length - 1) and transformed into
// the frequency domain once, so rendering never pays for the forward
// transform of the filter.
//
// # Sampling
//
// [Sphere.SampleBilinear] casts a ray from the sphere center along the
// requested direction, finds the enclosing mesh triangle and blends the
// three corner spectra with barycentric weights. The result feeds directly
// into the overlap-save convolution in package conv.
//
// # Coordinate system
//
// Spheres are built in a right-handed coordinate system. Applications
// using left-handed conventions can fix the chirality with
// [Sphere.Transform] and a z-inverting scale matrix.
package sphere
