package main

// Shader-facing constants. maxOps must match the ops[] array length in the
// fragment shader below (maxOps * 20 words).
const maxOps = 24

// The ray-marching shader decodes the same 20-word packet layout the gpu
// package encodes: words 0-8 inverse rotation (row-major), 9-11 center,
// 12-17 uber-primitive props, 18 op code, 19 blend. Must stay in lockstep
// with gpu.CreatePrimitiveOpPacket.
const (
	raymarchVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 mvp;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	raymarchFS = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;

uniform vec3 camPos;
uniform vec3 camRight;
uniform vec3 camUp;
uniform vec3 camForward;
uniform float tanHalfFov;
uniform float aspect;
uniform float opCount;
uniform float ops[480]; // 24 ops * 20 words

const float FAR = 100.0;
const float BIG = 1e9;
const int MAX_STEPS = 160;
const float HIT_EPS = 0.0015;

// Generalized rounded box: a zero-size box rounded by r.x is a sphere,
// a box with zero rounding is a cube. s.w (thickness) and r.y (hollowing)
// are not evaluated by this viewer.
float sdUber(vec3 p, vec4 s, vec2 r) {
  vec3 q = abs(p) - 0.5 * s.xyz;
  float box = length(max(q, 0.0)) + min(max(q.x, max(q.y, q.z)), 0.0);
  return box - r.x;
}

float smin(float a, float b, float k) {
  float h = clamp(0.5 + 0.5 * (b - a) / k, 0.0, 1.0);
  return mix(b, a, h) - k * h * (1.0 - h);
}

// sceneDist returns the scene SDF at p; sets bad=true on an invalid op code
// so corruption fails loudly instead of rendering wrong geometry.
float sceneDist(vec3 p, out bool bad) {
  bad = false;
  float total = BIG;
  float acc = BIG;
  int count = int(opCount);
  for (int i = 0; i < count && i < 24; i++) {
    int w = i * 20;
    float code = ops[w + 18];
    if (code < 0.0 || code > 3.5) {
      bad = true;
      return 0.0;
    }
    int op = int(code + 0.5);
    if (op == 0) {
      // NOP: no geometry; flush the accumulation and start fresh.
      total = min(total, acc);
      acc = BIG;
      continue;
    }
    vec3 r0 = vec3(ops[w + 0], ops[w + 1], ops[w + 2]);
    vec3 r1 = vec3(ops[w + 3], ops[w + 4], ops[w + 5]);
    vec3 r2 = vec3(ops[w + 6], ops[w + 7], ops[w + 8]);
    vec3 center = vec3(ops[w + 9], ops[w + 10], ops[w + 11]);
    vec4 dims = vec4(ops[w + 12], ops[w + 13], ops[w + 14], ops[w + 15]);
    vec2 corner = vec2(ops[w + 16], ops[w + 17]);
    float blend = ops[w + 19];

    vec3 rel = p - center;
    vec3 local = vec3(dot(r0, rel), dot(r1, rel), dot(r2, rel));
    float d = sdUber(local, dims, corner);

    if (op == 1) {
      acc = (blend > 0.0) ? smin(acc, d, blend) : min(acc, d);
    } else if (op == 2) {
      acc = max(acc, d);
    } else {
      acc = max(acc, -d);
    }
  }
  return min(total, acc);
}

vec3 sceneNormal(vec3 p) {
  bool bad;
  vec2 e = vec2(0.002, 0.0);
  return normalize(vec3(
    sceneDist(p + e.xyy, bad) - sceneDist(p - e.xyy, bad),
    sceneDist(p + e.yxy, bad) - sceneDist(p - e.yxy, bad),
    sceneDist(p + e.yyx, bad) - sceneDist(p - e.yyx, bad)));
}

void main() {
  vec2 uv = fragTexCoord * 2.0 - 1.0;
  uv.y = -uv.y;
  vec3 dir = normalize(camForward
    + camRight * (uv.x * aspect * tanHalfFov)
    + camUp * (uv.y * tanHalfFov));

  float t = 0.0;
  bool bad = false;
  bool hit = false;
  vec3 p = camPos;
  for (int i = 0; i < MAX_STEPS; i++) {
    p = camPos + dir * t;
    float d = sceneDist(p, bad);
    if (bad) break;
    if (d < HIT_EPS) { hit = true; break; }
    t += d;
    if (t > FAR) break;
  }

  if (bad) {
    // Invalid op code: scream in magenta rather than guess.
    finalColor = vec4(1.0, 0.0, 1.0, 1.0);
    return;
  }
  if (!hit) {
    float g = 0.12 + 0.1 * (uv.y * 0.5 + 0.5);
    finalColor = vec4(g, g + 0.02, g + 0.05, 1.0);
    return;
  }

  vec3 n = sceneNormal(p);
  vec3 l = normalize(vec3(0.5, 1.0, 0.5));
  float ndotl = max(dot(n, l), 0.0);
  vec3 base = vec3(0.65, 0.68, 0.72);
  vec3 amb = vec3(0.2, 0.22, 0.26);
  vec3 col = base * (amb + ndotl * vec3(1.0, 0.98, 0.95) * 0.8);
  finalColor = vec4(col, 1.0);
}
`
)
