package opencl

// traceKernel resolves one pixel per work-item. It mirrors
// spheretrace.TracePixel exactly: orthographic ray with direction
// (0, 0, 1), quadratic closest-hit test narrowing maxt, last accepted
// sphere wins, background when nothing is hit.
//
// Spheres arrive as a flat float buffer, seven floats each:
// cx, cy, cz, radius, r, g, b.
const traceKernel = `
__kernel void trace(__global const float* spheres,
                    uint num_spheres,
                    __global float* img,
                    uint width, uint height,
                    float left, float bottom,
                    float plane_w, float plane_h,
                    float near, float far,
                    float bg_r, float bg_g, float bg_b) {
    uint i = get_global_id(0);
    uint j = get_global_id(1);
    if (i >= width || j >= height) return;

    float ox = left + (plane_w / width) * (i + 0.5f);
    float oy = bottom + (plane_h / height) * (j + 0.5f);
    float oz = near;
    float maxt = far - near;

    int idx = -1;
    for (uint k = 0; k < num_spheres; ++k) {
        __global const float* s = spheres + k * 7;
        float lx = ox - s[0];
        float ly = oy - s[1];
        float lz = oz - s[2];
        /* direction is (0,0,1): a = 1, b = 2*lz */
        float b = 2.0f * lz;
        float c = lx * lx + ly * ly + lz * lz - s[3] * s[3];
        float d = b * b - 4.0f * c;
        if (d < 0.0f) continue;
        float sq = sqrt(d);
        float t0 = (-b - sq) * 0.5f;
        float t1 = (-b + sq) * 0.5f;
        if (t0 > maxt || t1 < 0.0f) continue;
        maxt = t0 > 0.0f ? t0 : t1;
        idx = (int)k;
    }

    uint p = (j * width + i) * 3;
    if (idx >= 0) {
        __global const float* s = spheres + idx * 7;
        img[p]     = s[4];
        img[p + 1] = s[5];
        img[p + 2] = s[6];
    } else {
        img[p]     = bg_r;
        img[p + 1] = bg_g;
        img[p + 2] = bg_b;
    }
}`
