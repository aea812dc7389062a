// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/olekukonko/tablewriter"
)

// ResourceUsageData represents the complete resource usage information
type ResourceUsageData struct {
	Timestamp      string         `json:"timestamp"`
	MemoryUsage    map[string]any `json:"memory_usage"`
	GCStats        map[string]any `json:"gc_stats"`
	SystemInfo     map[string]any `json:"system_info"`
	DetailedMemory map[string]any `json:"detailed_memory,omitempty"`
}

// CollectResourceUsage gathers current resource usage statistics
func CollectResourceUsage(detailed bool) *ResourceUsageData {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	gcStats := map[string]any{
		"num_gc":          memStats.NumGC,
		"num_forced_gc":   memStats.NumForcedGC,
		"gc_cpu_fraction": memStats.GCCPUFraction,
		"enable_gc":       memStats.EnableGC,
	}

	// Memory usage in MB
	memoryUsage := map[string]any{
		"heap_alloc_mb":    float64(memStats.HeapAlloc) / (1024 * 1024),
		"heap_sys_mb":      float64(memStats.HeapSys) / (1024 * 1024),
		"heap_idle_mb":     float64(memStats.HeapIdle) / (1024 * 1024),
		"heap_inuse_mb":    float64(memStats.HeapInuse) / (1024 * 1024),
		"heap_released_mb": float64(memStats.HeapReleased) / (1024 * 1024),
		"heap_objects":     memStats.HeapObjects,
		"stack_inuse_mb":   float64(memStats.StackInuse) / (1024 * 1024),
		"stack_sys_mb":     float64(memStats.StackSys) / (1024 * 1024),
	}

	systemInfo := map[string]any{
		"go_version":    runtime.Version(),
		"go_os":         runtime.GOOS,
		"go_arch":       runtime.GOARCH,
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
	}

	data := &ResourceUsageData{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		MemoryUsage: memoryUsage,
		GCStats:     gcStats,
		SystemInfo:  systemInfo,
	}

	if detailed {
		data.DetailedMemory = map[string]any{
			"alloc_mb":          float64(memStats.Alloc) / (1024 * 1024),
			"total_alloc_mb":    float64(memStats.TotalAlloc) / (1024 * 1024),
			"sys_mb":            float64(memStats.Sys) / (1024 * 1024),
			"mallocs":           memStats.Mallocs,
			"frees":             memStats.Frees,
			"gc_pause_total_ns": memStats.PauseTotalNs,
			"next_gc_mb":        float64(memStats.NextGC) / (1024 * 1024),
		}
	}

	return data
}

// FormatResourceUsageAsJSON formats resource usage data as JSON
func FormatResourceUsageAsJSON(data *ResourceUsageData) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource usage: %w", err)
	}
	return string(jsonData), nil
}

// FormatResourceUsageAsMarkdown formats resource usage data as readable markdown tables
func FormatResourceUsageAsMarkdown(data *ResourceUsageData) string {
	var buf strings.Builder

	buf.WriteString("# Resource Usage Report\n\n")
	fmt.Fprintf(&buf, "**Generated:** %s\n\n", data.Timestamp)

	buf.WriteString("## System Information\n\n")
	buf.WriteString(formatMarkdownTable(data.SystemInfo, []string{
		"Go Version", "go_version",
		"Operating System", "go_os",
		"Architecture", "go_arch",
		"CPU Count", "num_cpu",
		"Goroutines", "num_goroutine",
	}))

	buf.WriteString("## Memory Usage\n\n")
	buf.WriteString(formatMarkdownTable(data.MemoryUsage, []string{
		"Heap Allocated", "heap_alloc_mb",
		"Heap System", "heap_sys_mb",
		"Heap In Use", "heap_inuse_mb",
		"Heap Idle", "heap_idle_mb",
		"Heap Released", "heap_released_mb",
		"Heap Objects", "heap_objects",
		"Stack In Use", "stack_inuse_mb",
		"Stack System", "stack_sys_mb",
	}))

	buf.WriteString("## Garbage Collection\n\n")
	buf.WriteString(formatMarkdownTable(data.GCStats, []string{
		"GC Cycles", "num_gc",
		"Forced GC", "num_forced_gc",
		"GC CPU Fraction", "gc_cpu_fraction",
		"GC Enabled", "enable_gc",
	}))

	if data.DetailedMemory != nil {
		buf.WriteString("## Detailed Memory Statistics\n\n")
		buf.WriteString(formatMarkdownTable(data.DetailedMemory, []string{
			"Current Alloc", "alloc_mb",
			"Total Alloc", "total_alloc_mb",
			"System Memory", "sys_mb",
			"Mallocs", "mallocs",
			"Frees", "frees",
			"GC Pause Total", "gc_pause_total_ns",
			"Next GC", "next_gc_mb",
		}))
	}

	return buf.String()
}

// formatMarkdownTable renders label/key pairs as a table using tablewriter
func formatMarkdownTable(data map[string]any, fieldPairs []string) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.Header("Metric", "Value")
	for i := 0; i+1 < len(fieldPairs); i += 2 {
		label := fieldPairs[i]
		key := fieldPairs[i+1]
		if value, ok := data[key]; ok {
			table.Append([]string{label, formatMetricValue(value)})
		}
	}
	table.Render()

	buf.WriteString("\n")
	return buf.String()
}

// formatMetricValue renders a metric value compactly; floats get two decimals.
func formatMetricValue(value any) string {
	if f, ok := value.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprintf("%v", value)
}

// handleGetResourceUsage provides server resource usage statistics in JSON or
// markdown form.
func handleGetResourceUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detailed := request.GetBool("detailed", false)
	format := request.GetString("format", "json")

	data := CollectResourceUsage(detailed)

	switch format {
	case "markdown":
		return mcp.NewToolResultText(FormatResourceUsageAsMarkdown(data)), nil
	case "json":
		output, err := FormatResourceUsageAsJSON(data)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(output), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use 'json' or 'markdown'", format)), nil
	}
}
