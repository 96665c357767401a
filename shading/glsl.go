package shading

// Uniform names shared by the GLSL sources below and the code that feeds
// them.
const (
	UniformModel       = "model"
	UniformView        = "view"
	UniformPerspective = "perspective"
	UniformCamera      = "toCamera"

	UniformLightCount     = "lightCount"
	UniformLightPositions = "lightPositions"
	UniformLightColors    = "lightColors"

	UniformUseBeckmann    = "useBeckmann"
	UniformUseGGX         = "useGGX"
	UniformUseGeometric   = "useG"
	UniformUseFresnel     = "useF"
	UniformUseDenominator = "useDenom"
	UniformUsePi          = "usePi"

	UniformRoughness    = "roughness"
	UniformAmbient      = "ambientStrength"
	UniformDiffuse      = "diffuseStrength"
	UniformSpecular     = "specularStrength"
	UniformSurfaceColor = "surfaceColor"
	UniformFresnel      = "fresnel"
)

// MaxLights is the size of the light arrays declared in FragmentSource.
const MaxLights = 4

// VertexSource transforms positions to clip space and passes world-space
// position and normal to the fragment stage.
const VertexSource = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 perspective;

out vec3 fragPos;
out vec3 fragNormal;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    fragPos    = worldPos.xyz;
    fragNormal = mat3(transpose(inverse(model))) * inNormal;
    gl_Position = perspective * view * worldPos;
}
` + "\x00"

// FragmentSource evaluates the microfacet model. It must stay in step with
// Shade.
const FragmentSource = `
#version 410 core
in vec3 fragPos;
in vec3 fragNormal;

out vec4 outColor;

const float PI = 3.14159265359;
const float MIN_ROUGHNESS = 0.01;
const int MAX_LIGHTS = 4;

uniform vec3 toCamera;
uniform int  lightCount;
uniform vec3 lightPositions[MAX_LIGHTS];
uniform vec3 lightColors[MAX_LIGHTS];

uniform bool useBeckmann;
uniform bool useGGX;
uniform bool useG;
uniform bool useF;
uniform bool useDenom;
uniform bool usePi;

uniform float roughness;
uniform float ambientStrength;
uniform float diffuseStrength;
uniform float specularStrength;
uniform vec3  surfaceColor;
uniform vec3  fresnel;

float distributionTerm(float nh) {
    if (!useBeckmann && !useGGX) return 1.0;
    if (nh <= 0.0) return 0.0;

    float m   = clamp(roughness, MIN_ROUGHNESS, 1.0);
    float nh2 = nh * nh;
    float d;
    if (useBeckmann) {
        float m2   = m * m;
        float tan2 = (1.0 - nh2) / nh2;
        d = exp(-tan2 / m2) / (m2 * nh2 * nh2);
    } else {
        float a2 = m * m * m * m;
        float k  = nh2 * (a2 - 1.0) + 1.0;
        d = a2 / (k * k);
    }
    if (usePi) d /= PI;
    return d;
}

float geometricTerm(float nh, float nv, float nl, float vh) {
    if (!useG) return 1.0;
    if (vh <= 0.0) return 0.0;
    return clamp(min(2.0 * nh * nv / vh, 2.0 * nh * nl / vh), 0.0, 1.0);
}

vec3 fresnelTerm(float vh) {
    if (!useF) return vec3(1.0);
    return fresnel + (1.0 - fresnel) * pow(1.0 - clamp(vh, 0.0, 1.0), 5.0);
}

float denominator(float nl, float nv) {
    if (!useDenom) return 1.0;
    return max(4.0 * nl * nv, 1e-4);
}

void main() {
    vec3 N = normalize(fragNormal);
    vec3 V = normalize(toCamera - fragPos);

    vec3 color = surfaceColor * ambientStrength;
    for (int i = 0; i < lightCount && i < MAX_LIGHTS; i++) {
        vec3  L  = normalize(lightPositions[i] - fragPos);
        float nl = dot(N, L);
        if (nl <= 0.0) continue;

        vec3  H  = normalize(V + L);
        float nv = max(dot(N, V), 0.0);
        float nh = max(dot(N, H), 0.0);
        float vh = max(dot(V, H), 0.0);

        vec3 spec = fresnelTerm(vh) * distributionTerm(nh) * geometricTerm(nh, nv, nl, vh)
                  / denominator(nl, nv);

        vec3 diffuse  = surfaceColor * diffuseStrength * nl;
        vec3 specular = spec * specularStrength * nl;
        color += (diffuse + specular) * lightColors[i];
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"
