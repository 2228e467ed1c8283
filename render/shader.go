// SPDX-License-Identifier: GPL-2.0-or-later

package render

const (
	vertexSourceMeshDrawer = `
#version 330
layout (location = 0) in vec3 vposition;
layout (location = 1) in vec3 vnormal;
out vec3 Normal;
uniform mat4 projection;
uniform mat4 modelview;

void main() {
	Normal = mat3(modelview) * vnormal;
	gl_Position = projection * modelview * vec4(vposition, 1.0);
}
` + "\x00"

	fragmentSourceMeshDrawer = `
#version 330
in vec3 Normal;
out vec4 frag_color;
uniform vec3 LightDir;
uniform vec3 ViewDir;
uniform vec3 BaseColor;
uniform float Ambient;
uniform float Diffuse;
uniform float Specular;
uniform float Shininess;

void main() {
	vec3 n = normalize(Normal);
	float diffuse = max(0.0, dot(LightDir, n));
	vec3 r = reflect(-LightDir, n);
	float specular = pow(max(0.0, dot(ViewDir, r)), Shininess);
	float intensity = Ambient + diffuse * Diffuse + specular * Specular;
	frag_color = vec4(BaseColor * intensity, 1.0);
}
` + "\x00"
)
