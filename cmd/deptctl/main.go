// deptctl 部门数据运维工具：迁移、表格导入导出与访问令牌管理
package main

func main() {
	execute()
}
