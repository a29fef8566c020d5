// WGSL compute kernels for device-side sampling.
//
// All kernels draw from a stateless counter-based generator: each output
// element hashes (seed, counter + index) through a PCG round, so a fill of n
// elements consumes exactly n counter slots and the sequence is reproducible
// for a given seed regardless of workgroup scheduling.

package webgpu

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// rngCommon holds the shared generator helpers prepended to every kernel.
//
// pcg_hash is the PCG-RXS-M-XS output permutation over an LCG step.
// uniform_01 maps a word to [0, 1); uniform_open maps to (0, 1] so the
// Box-Muller logarithm never sees zero.
const rngCommon = `
struct Params {
    n: u32,
    seed: u32,
    offset: u32,
    _pad: u32,
    a: f32,
    b: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

fn pcg_hash(v: u32) -> u32 {
    var state = v * 747796405u + 2891336453u;
    let word = ((state >> ((state >> 28u) + 4u)) ^ state) * 277803737u;
    return (word >> 22u) ^ word;
}

fn draw(idx: u32, lane: u32) -> u32 {
    return pcg_hash(params.seed ^ pcg_hash((params.offset + idx) * 2u + lane));
}

fn uniform_01(w: u32) -> f32 {
    return f32(w) * 2.3283064365386963e-10;
}

fn uniform_open(w: u32) -> f32 {
    return (f32(w) + 1.0) * 2.3283064365386963e-10;
}
`

// rngUniformShader fills out[i] with draws uniform on [a, b].
const rngUniformShader = rngCommon + `
@group(0) @binding(0) var<storage, read_write> out: array<f32>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.n) {
        let u = uniform_01(draw(idx, 0u));
        out[idx] = params.a + u * (params.b - params.a);
    }
}
`

// rngGaussianShader fills out[i] with draws from Normal(a, b^2) via the
// Box-Muller transform.
const rngGaussianShader = rngCommon + `
@group(0) @binding(0) var<storage, read_write> out: array<f32>;

const TWO_PI: f32 = 6.283185307179586;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.n) {
        let u1 = uniform_open(draw(idx, 0u));
        let u2 = uniform_01(draw(idx, 1u));
        let z = sqrt(-2.0 * log(u1)) * cos(TWO_PI * u2);
        out[idx] = params.a + params.b * z;
    }
}
`

// rngBernoulliShader fills out[i] with 1u with probability a, else 0u.
const rngBernoulliShader = rngCommon + `
@group(0) @binding(0) var<storage, read_write> out: array<u32>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.n) {
        let u = uniform_01(draw(idx, 0u));
        out[idx] = select(0u, 1u, u < params.a);
    }
}
`

// rngUniformUintShader fills out[i] with full-range u32 draws.
const rngUniformUintShader = rngCommon + `
@group(0) @binding(0) var<storage, read_write> out: array<u32>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.n) {
        out[idx] = draw(idx, 0u);
    }
}
`
