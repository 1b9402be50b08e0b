// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import "strings"

// Reserved words of the target languages. A WGSL identifier spelled like
// one of these must be renamed before code generation for that target.

var glslReserved = wordSet(`
	abs acos acosh active all any asin asinh asm atan atanh atomic_uint
	atomicAdd atomicAnd atomicCompSwap atomicCounter atomicCounterAdd
	atomicCounterAnd atomicCounterCompSwap atomicCounterDecrement
	atomicCounterExchange atomicCounterIncrement atomicCounterMax
	atomicCounterMin atomicCounterOr atomicCounterSubtract atomicCounterXor
	atomicExchange atomicMax atomicMin atomicOr atomicXor attribute barrier
	bitCount bitfieldExtract bitfieldInsert bitfieldReverse bool break
	buffer bvec2 bvec3 bvec4 case cast ceil centroid clamp class coherent
	common const continue cos cosh cross default degrees determinant dFdx
	dFdxCoarse dFdxFine dFdy dFdyCoarse dFdyFine discard distance dmat2
	dmat2x2 dmat2x3 dmat2x4 dmat3 dmat3x2 dmat3x3 dmat3x4 dmat4 dmat4x2
	dmat4x3 dmat4x4 do dot double dvec2 dvec3 dvec4 else EmitStreamVertex
	EmitVertex EndPrimitive EndStreamPrimitive enum equal exp exp2 extern
	external faceforward false filter findLSB findMSB fixed flat float
	floatBitsToInt floatBitsToUint floor fma for fract frexp fvec2 fvec3
	fvec4 fwidth fwidthCoarse fwidthFine gl_ClipDistance gl_CullDistance
	gl_FragCoord gl_FragDepth gl_FrontFacing gl_GlobalInvocationID
	gl_HelperInvocation gl_InstanceID gl_InvocationID gl_Layer
	gl_LocalInvocationID gl_LocalInvocationIndex gl_MaxClipDistances
	gl_MaxCombinedTextureImageUnits gl_MaxComputeAtomicCounterBuffers
	gl_MaxComputeAtomicCounters gl_MaxComputeImageUniforms
	gl_MaxComputeTextureImageUnits gl_MaxComputeUniformComponents
	gl_MaxComputeWorkGroupCount gl_MaxComputeWorkGroupSize
	gl_MaxCullDistances gl_MaxDrawBuffers gl_MaxFragmentUniformVectors
	gl_MaxTextureImageUnits gl_MaxVaryingVectors gl_MaxVertexAttribs
	gl_MaxVertexTextureImageUnits gl_MaxVertexUniformVectors
	gl_NumWorkGroups gl_PatchVerticesIn gl_PerVertex gl_PointCoord
	gl_PointSize gl_Position gl_PrimitiveID gl_PrimitiveIDIn gl_SampleID
	gl_SampleMask gl_SampleMaskIn gl_SamplePosition gl_TessCoord
	gl_TessLevelInner gl_TessLevelOuter gl_VertexID gl_ViewportIndex
	gl_WorkGroupID gl_WorkGroupSize goto greaterThan greaterThanEqual
	groupMemoryBarrier half highp hvec2 hvec3 hvec4 if iimage1D
	iimage1DArray iimage2D iimage2DArray iimage2DMS iimage2DMSArray
	iimage2DRect iimage3D iimageBuffer iimageCube iimageCubeArray image1D
	image1DArray image2D image2DArray image2DMS image2DMSArray image2DRect
	image3D imageAtomicAdd imageAtomicAnd imageAtomicCompSwap
	imageAtomicExchange imageAtomicMax imageAtomicMin imageAtomicOr
	imageAtomicXor imageBuffer imageCube imageCubeArray imageLoad
	imageSamples imageSize imageStore imulExtended in inline inout input int
	intBitsToFloat interface interpolateAtCentroid interpolateAtOffset
	interpolateAtSample invariant inverse inversesqrt isampler1D
	isampler1DArray isampler2D isampler2DArray isampler2DMS
	isampler2DMSArray isampler2DRect isampler3D isamplerBuffer isamplerCube
	isamplerCubeArray isinf isnan ivec2 ivec3 ivec4 layout ldexp length
	lessThan lessThanEqual log log2 long lowp main mat2 mat2x2 mat2x3 mat2x4
	mat3 mat3x2 mat3x3 mat3x4 mat4 mat4x2 mat4x3 mat4x4 matrixCompMult max
	mediump memoryBarrier memoryBarrierAtomicCounter memoryBarrierBuffer
	memoryBarrierImage memoryBarrierShared min mix mod modf namespace
	noinline noise1 noise2 noise3 noise4 noperspective normalize not
	notEqual out outerProduct output packDouble2x32 packHalf2x16
	packSnorm2x16 packSnorm4x8 packUnorm2x16 packUnorm4x8 partition patch
	pow precise precision public radians readonly reflect refract resource
	restrict return round roundEven sample sampler sampler1D sampler1DArray
	sampler1DArrayShadow sampler1DShadow sampler2D sampler2DArray
	sampler2DArrayShadow sampler2DMS sampler2DMSArray sampler2DRect
	sampler2DRectShadow sampler2DShadow sampler3D sampler3DRect
	samplerBuffer samplerCube samplerCubeArray samplerCubeArrayShadow
	samplerCubeShadow shared short sign sin sinh sizeof smooth smoothstep
	sqrt static step struct subpassLoad subroutine superp switch tan tanh
	template texelFetch texelFetchOffset texture textureGather
	textureGatherOffset textureGatherOffsets textureGrad textureGradOffset
	textureLod textureLodOffset textureOffset textureProj textureProjGrad
	textureProjGradOffset textureProjLod textureProjLodOffset
	textureProjOffset textureQueryLevels textureQueryLod textureSamples
	textureSize this transpose true trunc typedef uaddCarry uimage1D
	uimage1DArray uimage2D uimage2DArray uimage2DMS uimage2DMSArray
	uimage2DRect uimage3D uimageBuffer uimageCube uimageCubeArray uint
	uintBitsToFloat umulExtended uniform union unpackDouble2x32
	unpackHalf2x16 unpackSnorm2x16 unpackSnorm4x8 unpackUnorm2x16
	unpackUnorm4x8 unsigned usampler1D usampler1DArray usampler2D
	usampler2DArray usampler2DMS usampler2DMSArray usampler2DRect usampler3D
	usamplerBuffer usamplerCube usamplerCubeArray using usubBorrow uvec2
	uvec3 uvec4 varying vec2 vec3 vec4 void volatile while writeonly
`)

var hlslReserved = wordSet(`
	__abstract __alignof __asm __asm__ __assume __attribute __auto_type
	__based __box __builtin_choose_expr __builtin_offsetof __builtin_va_arg
	__cdecl __clrcall __declspec __delegate __dynamic_buffer_offsets __event
	__except __extension__ __fastcall __finally __forceinline __func__
	__FUNCDNAME__ __FUNCSIG__ __FUNCTION__ __gc __has_nothrow_move_assign
	__has_nothrow_move_constructor __has_trivial_move_assign
	__has_trivial_move_constructor __hook __identifier __if_exists
	__if_not_exists __imag __inline __int128 __int16 __int32 __int64 __int8
	__interface __is_aggregate __is_assignable __is_constructible
	__is_destructible __is_final __is_interface_class
	__is_nothrow_assignable __is_nothrow_constructible
	__is_nothrow_destructible __is_sealed __is_trivially_assignable
	__is_trivially_constructible __is_trivially_copyable
	__is_trivially_destructible __label__ __leave __m128 __m128d __m128i
	__m64 __multiple_inheritance __nogc __noop __null __objc_no __objc_yes
	__pin __PRETTY_FUNCTION__ __property __ptr32 __ptr64 __raise __real
	__restrict __sealed __single_inheritance __sptr __stdcall __super
	__thiscall __thread __try __try_cast __typeof __unaligned
	__underlying_type __unhook __uptr __uuidof __value __vectorcall
	__virtual_inheritance __w64 __wchar_t _Alignas _Alignof _asm _Atomic
	_Bool _Complex _Decimal128 _Decimal32 _Decimal64 _Generic _Imaginary
	_Noreturn
	_Static_assert _Thread_local abort abs AcceptHitAndEndSearch acos
	alignas alignof all AllMemoryBarrier AllMemoryBarrierWithGroupSync
	AllocateRayQuery any AppendStructuredBuffer asdouble asfloat asin asint
	asm asm_fragment asuint atan atan2 attributes auto BlendState bool break
	Buffer ByteAddressBuffer CallShader case catch cbuffer ceil centroid
	char char16_t char32_t char8_t CheckAccessFullyMapped clamp class clip
	co_await co_return co_yield column_major compile compile_fragment
	CompileShader ComputeShader concept const const_cast ConstantBuffer
	consteval constexpr constinit ConsumeStructuredBuffer continue cos cosh
	countbits CreateResourceFromHeap cross D3DCOLORtoUBYTE4 ddx ddx_coarse
	ddx_fine ddy ddy_coarse ddy_fine decltype default degrees delete
	DepthStencilState DepthStencilView determinant DeviceMemoryBarrier
	DeviceMemoryBarrierWithGroupSync discard DispatchMesh
	DispatchRaysDimensions DispatchRaysIndex distance do DomainShader dot
	double dst dword dynamic_cast else enum errorf EvaluateAttributeAtSample
	EvaluateAttributeCentroid EvaluateAttributeSnapped exp exp2 explicit
	export extern f16tof32 f32tof16 faceforward false FeedbackTexture2D
	FeedbackTexture2DArray firstbithigh firstbitlow float floor fma fmod for
	frac frexp friend fwidth fxgroup GeometryIndex GeometryShader
	GetRenderTargetSampleCount GetRenderTargetSamplePosition
	globallycoherent goto GroupMemoryBarrier GroupMemoryBarrierWithGroupSync
	groupshared half HitKind Hullshader if IgnoreHit in indices inline inout
	InputPatch InstanceID InstanceIndex int interface InterlockedAdd
	InterlockedAnd InterlockedCompareExchange InterlockedCompareStore
	InterlockedExchange InterlockedMax InterlockedMin InterlockedOr
	InterlockedXor isfinite IsHelperLane isinf isnan L__FUNCTION__ ldexp
	length lerp line lineadj linear LineStream lit log log10 log2 long mad
	matrix max min min10float min12int min16float min16int min16uint modf
	msad4 mul mutable namespace new noexcept nointerpolation noise
	noperspective normalize NULL nullptr ObjectRayDirection ObjectRayOrigin
	ObjectToWorld ObjectToWorld3x4 ObjectToWorld4x3 operator out OutputPatch
	packoffset pass payload pixelfragment PixelShader point PointStream pow
	precise PrimitiveIndex primitives printf private
	Process2DQuadTessFactorsAvg Process2DQuadTessFactorsMax
	Process2DQuadTessFactorsMin ProcessIsolineTessFactors
	ProcessQuadTessFactorsAvg ProcessQuadTessFactorsMax
	ProcessQuadTessFactorsMin ProcessTriTessFactorsAvg
	ProcessTriTessFactorsMax ProcessTriTessFactorsMin protected public
	QuadAll QuadAny QuadReadAcrossDiagonal QuadReadAcrossX QuadReadAcrossY
	QuadReadLaneAt radians RasterizerOrderedBuffer
	RasterizerOrderedByteAddressBuffer RasterizerOrderedStructuredBuffer
	RasterizerOrderedTexture1D RasterizerOrderedTexture1DArray
	RasterizerOrderedTexture2D RasterizerOrderedTexture2DArray
	RasterizerOrderedTexture3D RasterizerState RayDesc RayFlags RayQuery
	RayTCurrent RayTMin RaytracingAccelerationStructure rcp reflect refract
	register reinterpret_cast RenderTargetView ReportHit requires return
	reversebits round row_major rsqrt RWBuffer RWByteAddressBuffer
	RWStructuredBuffer RWTexture1D RWTexture1DArray RWTexture2D
	RWTexture2DArray RWTexture2DMS RWTexture2DMSArray RWTexture3D
	RWTextureCube RWTextureCubeArray sample sampler SamplerComparisonState
	SamplerState saturate SetMeshOutputCounts shared short sign signed sin
	sincos sinh sizeof smoothstep snorm sqrt stateblock stateblock_state
	static static_assert static_cast step string struct StructuredBuffer
	SV_Barycentrics SV_ClipDistance SV_Coverage SV_CullDistance
	SV_CullPrimitive SV_Depth SV_DispatchThreadID SV_GroupID SV_GroupIndex
	SV_GroupThreadID SV_GSInstanceID SV_InsideTessFactor SV_InstanceID
	SV_IsFrontFace SV_OutputControlPointID SV_Position SV_PrimitiveID
	SV_RenderTargetArrayIndex SV_SampleIndex SV_ShadingRate SV_StencilRef
	SV_Target SV_TessFactor SV_VertexID SV_ViewportArrayIndex switch tan
	tanh tbuffer technique technique10 technique11 template tex1D tex1Dbias
	tex1Dgrad tex1Dlod tex1Dproj tex2D tex2Dbias tex2Dgrad tex2Dlod
	tex2Dproj tex3D tex3Dbias tex3Dgrad tex3Dlod tex3Dproj texCUBE
	texCUBEbias texCUBEgrad texCUBElod texCUBEproj texture Texture1D
	Texture1DArray Texture2D Texture2DArray Texture2DMS Texture2DMSArray
	Texture3D TextureBuffer TextureCube TextureCubeArray this thread_local
	throw TraceRay transpose triangle triangleadj TriangleStream true trunc
	try typedef typeid typename typeof uint uniform union unorm unsigned
	using vector vertexfragment VertexShader vertices virtual void volatile
	WaveActiveAllEqual WaveActiveAllTrue WaveActiveAnyTrue WaveActiveBallot
	WaveActiveBitAnd WaveActiveBitOr WaveActiveBitXor WaveActiveCountBits
	WaveActiveMax WaveActiveMin WaveActiveProduct WaveActiveSum
	WaveGetLaneCount WaveGetLaneIndex WaveIsFirstLane WaveMatch
	WaveMultiPrefixBitAnd WaveMultiPrefixBitOr WaveMultiPrefixBitXor
	WaveMultiPrefixCountBits WaveMultiPrefixProduct WaveMultiPrefixSum
	WavePrefixCountBits WavePrefixProduct WavePrefixSum WaveReadLaneAt
	WaveReadLaneFirst wchar_t while WorldRayDirection WorldRayOrigin
	WorldToObject WorldToObject3x4 WorldToObject4x3
`)

// hlslFoldedReserved are matched without regard to case.
var hlslFoldedReserved = wordSet(`
	asm decl pass technique texture1d texture2d texture3d texturecube
`)

var mslReserved = wordSet(`
	abs acos alignas alignof and and_eq array asin asm assert atan atomic
	atomic_bool atomic_int atomic_uint auto bitand bitor bool bool2 bool3
	bool4 break case catch ceil char char16_t char2 char3 char32_t char4
	clamp class compl compute const const_cast constant constexpr continue
	cos cross decltype default delete depth2d depth2d_array depth2d_ms
	depthcube depthcube_array device distance do dot double dynamic_cast
	else enum exp exp2 explicit export extern false float float2 float2x2
	float2x3 float2x4 float3 float3x2 float3x3 float3x4 float4 float4x2
	float4x3 float4x4 floor fmax fmin for fract fragment friend goto half
	half2 half2x2 half2x3 half2x4 half3 half3x2 half3x3 half3x4 half4
	half4x2 half4x3 half4x4 if inline int int2 int3 int4 kernel length log
	log2 long main matrix max metal min mix mutable namespace new noexcept
	normalize not not_eq nullptr object_data operator or or_eq packed_float2
	packed_float3 packed_float4 pow private protected ptrdiff_t public
	ray_data register reinterpret_cast return round rsqrt sampler select
	short short2 short3 short4 sign signed sin size_t sizeof sqrt static
	static_assert static_cast step struct switch tan template texture1d
	texture2d texture2d_array texture2d_ms texture3d texturecube
	texturecube_array this thread thread_local threadgroup
	threadgroup_imageblock throw transpose true trunc try typedef typeid
	typename uchar uchar2 uchar3 uchar4 uint2 uint3 uint4 union unsigned
	ushort ushort2 ushort3 ushort4 using vec vertex virtual void volatile
	wchar_t while xor xor_eq
`)

var wgslReserved = wordSet(`
	abstract active alias alignas alignof array as asm asm_fragment async
	atomic attribute auto await become bool break case cast catch class
	co_await co_return co_yield coherent column_major common compile
	compile_fragment concept const const_assert const_cast consteval
	constexpr constinit continue continuing crate debugger decltype default
	delete demote demote_to_helper diagnostic discard do dynamic_cast else
	enable enum explicit export extends extern external f16 f32 fallthrough
	false filter final finally fn for friend from fxgroup get goto
	groupshared highp i32 if impl implements import inline instanceof
	interface layout let loop lowp macro macro_rules mat2x2 mat2x3 mat2x4
	mat3x2 mat3x3 mat3x4 mat4x2 mat4x3 mat4x4 match mediump meta mod module
	move mut mutable namespace new nil noexcept noinline nointerpolation
	non_coherent noncoherent noperspective NULL null nullptr of operator
	override package packoffset partition pass patch pixelfragment precise
	precision premerge priv protected ptr pub public readonly ref regardless
	register reinterpret_cast require requires resource restrict return
	sampler sampler_comparison Self self set shared sizeof smooth snorm
	static static_assert static_cast std struct subroutine super switch
	target template texture_1d texture_2d texture_2d_array texture_3d
	texture_cube texture_cube_array texture_depth_2d texture_depth_2d_array
	texture_depth_cube texture_depth_cube_array
	texture_depth_multisampled_2d texture_multisampled_2d texture_storage_1d
	texture_storage_2d texture_storage_2d_array texture_storage_3d this
	thread_local throw trait true try type typedef typeid typename typeof
	u32 union unless unorm unsafe unsized use using var varying vec2 vec3
	vec4 virtual volatile wgsl where while with writeonly yield
`)

func init() {
	addHLSLTypeShorthands(hlslReserved)
}

// addHLSLTypeShorthands adds the scalar, vector and matrix type names of
// HLSL, such as float4 and min16int2x3.
func addHLSLTypeShorthands(set map[string]struct{}) {
	vectors := strings.Fields(`bool int uint dword half float double min10float min16float
		min12int min16int min16uint int16_t int32_t int64_t uint16_t uint32_t uint64_t
		float16_t float32_t float64_t`)
	for _, base := range vectors {
		set[base] = struct{}{}
		for n := '1'; n <= '4'; n++ {
			set[base+string(n)] = struct{}{}
		}
	}
	set["int8_t4_packed"] = struct{}{}
	set["uint8_t4_packed"] = struct{}{}

	matrices := strings.Fields(`bool int uint half float double min10float min16float
		min12int min16int min16uint float16_t float32_t float64_t`)
	for _, base := range matrices {
		for r := '1'; r <= '4'; r++ {
			for c := '1'; c <= '4'; c++ {
				set[base+string(r)+"x"+string(c)] = struct{}{}
			}
		}
	}
}

func wordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}
